package report

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"ofods/internal/db"
)

// Rule is written under every section header.
var Rule = strings.Repeat("-", 60)

// Querier is the part of *sql.DB (or *sql.Tx, *sql.Conn) a report needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Section is one rendered query result.
type Section struct {
	Title  string
	Header string
	Lines  []string
}

// Collect runs q and renders every row. Driver failures come back as
// *db.Error; a value that cannot be rendered is a plain error.
func Collect(ctx context.Context, conn Querier, q Query) (Section, error) {
	sec := Section{Title: q.Title, Header: q.Header()}

	rows, err := conn.QueryContext(ctx, q.SQL)
	if err != nil {
		return sec, db.Wrap("query", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return sec, db.Wrap("query", err)
	}
	if len(cols) != len(q.Columns) {
		return sec, fmt.Errorf("report: %s: query returned %d columns, want %d", q.Title, len(cols), len(q.Columns))
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return sec, db.Wrap("scan", err)
		}
		row := make([]any, len(vals))
		for i, v := range vals {
			// drivers may reuse the backing array of []byte values
			if b, ok := v.([]byte); ok {
				v = append([]byte(nil), b...)
			}
			row[i] = v
		}
		line, err := formatRow(q, row)
		if err != nil {
			return sec, err
		}
		sec.Lines = append(sec.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return sec, db.Wrap("query", err)
	}
	return sec, nil
}

// WriteFile renders s in report-file form.
func (s Section) WriteFile(w io.Writer) error {
	var b strings.Builder
	b.WriteString(s.Title + "\n")
	b.WriteString(s.Header + "\n")
	b.WriteString(Rule + "\n")
	if len(s.Lines) == 0 {
		b.WriteString("No data found.\n")
	}
	for _, l := range s.Lines {
		b.WriteString(l + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteConsole renders s in console form: the title and the row lines, or a
// no-data line naming the section.
func (s Section) WriteConsole(w io.Writer) error {
	var b strings.Builder
	b.WriteString(s.Title + "\n")
	if len(s.Lines) == 0 {
		fmt.Fprintf(&b, "No data found for %s.\n", s.Title)
	}
	for _, l := range s.Lines {
		b.WriteString(l + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Render concatenates sections in report-file form, separated by a blank line.
func Render(sections []Section) []byte {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		_ = s.WriteFile(&b)
	}
	return []byte(b.String())
}
