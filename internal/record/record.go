// Package record defines the uniform record shape produced by every source
// format adapter, and the single extraction step that turns a record into an
// ordered list of text values for a declared column list.
package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Record maps a column/key name to its raw decoded value. Values are whatever
// the adapter produced: string, json.Number, int, float64, bool, nil, or a
// nested map/list for structured inputs.
type Record map[string]any

// MissingColumnError reports a declared column that is absent from a record.
type MissingColumnError struct {
	Index  int // zero-based position of the record in its source
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("record %d: missing column %q", e.Index, e.Column)
}

// Extract returns the values of columns from rec, in column order, coerced to
// text. idx is only used for error reporting.
func Extract(rec Record, idx int, columns []string) ([]string, error) {
	out := make([]string, len(columns))
	for i, col := range columns {
		v, ok := rec[col]
		if !ok {
			return nil, &MissingColumnError{Index: idx, Column: col}
		}
		out[i] = Text(v)
	}
	return out, nil
}

// Text renders a decoded value as text. Numbers keep their source spelling
// where the decoder preserved it (json.Number), nil becomes the empty string.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}
