// Package xlsx implements the tabular adapter for spreadsheet workbooks. One
// sheet is read; its header row names the columns and every following row
// becomes a record.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"ofods/internal/config"
	"ofods/internal/parser"
	"ofods/internal/record"
	"ofods/internal/source"
)

// Options configures the spreadsheet adapter.
type Options struct {
	// Sheet names the worksheet; empty selects the first sheet.
	Sheet string

	// HeaderRow is the 1-based row holding column names; 0 means 1.
	HeaderRow int
}

// FromConfigOptions reads "sheet" and "header_row".
func FromConfigOptions(o config.Options) Options {
	return Options{
		Sheet:     o.String("sheet", ""),
		HeaderRow: o.Int("header_row", 1),
	}
}

func init() {
	parser.Register(source.FormatXLSX, func(o config.Options) (parser.Parser, error) {
		return NewParser(FromConfigOptions(o)), nil
	})
}

// Parser is the spreadsheet adapter.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the configured sheet. Cells are taken as formatted text.
// Trailing empty cells that the workbook omits read as empty strings, and
// fully blank rows are skipped.
func (p *Parser) Parse(r io.Reader) ([]record.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: open: %w", err)
	}
	defer f.Close()

	sheet := p.opt.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("xlsx parser: workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx parser: sheet %q: %w", sheet, err)
	}

	hdr := p.opt.HeaderRow
	if hdr <= 0 {
		hdr = 1
	}
	if len(rows) < hdr {
		return nil, nil
	}
	headers := make([]string, len(rows[hdr-1]))
	for i, h := range rows[hdr-1] {
		headers[i] = strings.TrimSpace(h)
	}

	var out []record.Record
	for n, row := range rows[hdr:] {
		if blank(row) {
			continue
		}
		if len(row) > len(headers) {
			return nil, fmt.Errorf("xlsx parser: sheet %q row %d has %d cells, header has %d", sheet, hdr+n+1, len(row), len(headers))
		}
		rec := make(record.Record, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
