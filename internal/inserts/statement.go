package inserts

import (
	"strings"

	"ofods/internal/config"
)

// Statement renders one INSERT for table. Every value is quoted as text.
// In config.QuoteRaw mode values are embedded verbatim, so a value holding a
// single quote yields a malformed statement; config.QuoteEscape doubles it.
func Statement(table string, columns, values []string, mode string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		if mode == config.QuoteEscape {
			v = strings.ReplaceAll(v, "'", "''")
		}
		quoted[i] = "'" + v + "'"
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(");")
	return b.String()
}
