package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldSep separates values on a row line and names on the header line.
const FieldSep = " | "

// formatValue renders one scanned value for a column of kind k.
func formatValue(v any, k Kind) (string, error) {
	if v == nil {
		return "NULL", nil
	}
	if k == KindMoney {
		return formatMoney(v)
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(x), nil
	case time.Time:
		return x.Format("2006-01-02 15:04:05"), nil
	default:
		return fmt.Sprintf("%v", x), nil
	}
}

// formatMoney renders a SUM over a money or decimal column. Drivers return
// exact decimals as text (SQL Server, Postgres) and those are rounded half
// to even on their exact value; binary floats (SQLite REAL) are formatted
// as floats.
func formatMoney(v any) (string, error) {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("$%.2f", x), nil
	case float32:
		return fmt.Sprintf("$%.2f", x), nil
	case int64:
		return "$" + decimal.NewFromInt(x).StringFixed(2), nil
	case int:
		return "$" + decimal.NewFromInt(int64(x)).StringFixed(2), nil
	case []byte:
		return moneyText(string(x))
	case string:
		return moneyText(x)
	default:
		return "", fmt.Errorf("cannot format %T as money", v)
	}
}

func moneyText(s string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("cannot format %q as money: %w", s, err)
	}
	return "$" + d.StringFixedBank(2), nil
}

// formatRow joins the rendered values of one row.
func formatRow(q Query, row []any) (string, error) {
	parts := make([]string, len(row))
	for i, v := range row {
		s, err := formatValue(v, q.Columns[i].Kind)
		if err != nil {
			return "", fmt.Errorf("report: %s: column %s: %w", q.Title, q.Columns[i].Name, err)
		}
		parts[i] = s
	}
	return strings.Join(parts, FieldSep), nil
}
