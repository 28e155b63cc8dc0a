package inserts

import (
	"fmt"
	"log"

	"ofods/internal/config"
	"ofods/internal/metrics"
	"ofods/internal/parser"
	"ofods/internal/record"
	"ofods/internal/source"
)

// TableError attributes a load failure to the table being loaded.
type TableError struct {
	Table string
	Path  string
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %s (%s): %v", e.Table, e.Path, e.Err)
}

func (e *TableError) Unwrap() error { return e.Err }

// Table is a loaded source: the declared columns' values for each record, in
// file order.
type Table struct {
	Spec   config.TableSpec
	Values [][]string
}

// Load opens, parses and extracts every declared table, in order. It stops
// at the first table that fails, so nothing is generated from partial input.
func Load(job string, specs []config.TableSpec) ([]Table, error) {
	out := make([]Table, 0, len(specs))
	for _, spec := range specs {
		done := metrics.StartStep(job, "load_table")
		t, err := LoadTable(spec)
		done(err)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadTable reads one table's source with the adapter for its format and
// extracts the declared columns from every record.
func LoadTable(spec config.TableSpec) (Table, error) {
	wrap := func(err error) error {
		return &TableError{Table: spec.Table, Path: spec.Path, Err: err}
	}

	format := spec.Format
	if format == "" {
		format = source.DetectFormat(spec.Path)
	}
	if format == "" {
		return Table{}, wrap(fmt.Errorf("cannot detect format from file name"))
	}
	p, err := parser.New(format, spec.Options)
	if err != nil {
		return Table{}, wrap(err)
	}

	rc, err := source.Open(spec.Path)
	if err != nil {
		return Table{}, wrap(err)
	}
	recs, err := p.Parse(rc)
	cerr := rc.Close()
	if err != nil {
		return Table{}, wrap(err)
	}
	if cerr != nil {
		return Table{}, wrap(cerr)
	}

	t := Table{Spec: spec, Values: make([][]string, 0, len(recs))}
	for i, rec := range recs {
		vals, err := record.Extract(rec, i, spec.Columns)
		if err != nil {
			return Table{}, wrap(err)
		}
		t.Values = append(t.Values, vals)
	}
	log.Printf("inserts: loaded table=%s format=%s path=%s records=%d", spec.Table, format, spec.Path, len(t.Values))
	return t, nil
}
