// Package csv implements the tabular format adapter: delimiter-separated
// rows keyed by a header row. Header names are kept verbatim (only
// surrounding whitespace is trimmed) so they match declared column names.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"ofods/internal/config"
	"ofods/internal/parser"
	"ofods/internal/record"
	"ofods/internal/source"
)

// Options configures the CSV parser. Zero values pick the defaults.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool

	// LazyQuotes relaxes quote handling of encoding/csv.
	LazyQuotes bool
}

// FromConfigOptions maps per-table options ("comma", "trim_space",
// "lazy_quotes") onto Options.
func FromConfigOptions(o config.Options, defComma rune) Options {
	return Options{
		Comma:      o.Rune("comma", defComma),
		TrimSpace:  o.Bool("trim_space", false),
		LazyQuotes: o.Bool("lazy_quotes", false),
	}
}

func init() {
	parser.Register(source.FormatCSV, func(o config.Options) (parser.Parser, error) {
		return NewParser(FromConfigOptions(o, ',')), nil
	})
	parser.Register(source.FormatTSV, func(o config.Options) (parser.Parser, error) {
		return NewParser(FromConfigOptions(o, '\t')), nil
	})
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs but not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the header row and then every body row into a record keyed
// by header name. A header naming a column twice, or a row whose width
// differs from the header, is an error.
// Empty input yields no records.
func (p *Parser) Parse(r io.Reader) ([]record.Record, error) {
	cr := csv.NewReader(source.Text(r))
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.LazyQuotes = p.opt.LazyQuotes
	cr.ReuseRecord = false

	h, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	headers := make([]string, len(h))
	seen := make(map[string]int, len(h))
	for i, col := range h {
		name := strings.TrimSpace(col)
		if j, dup := seen[name]; dup && name != "" {
			return nil, fmt.Errorf("csv: duplicate column %q in header (fields %d and %d)", name, j+1, i+1)
		}
		seen[name] = i
		headers[i] = name
	}

	var out []record.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		rec := make(record.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[headers[i]] = val
		}
		out = append(out, rec)
	}
	return out, nil
}
