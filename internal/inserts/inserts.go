// Package inserts converts declared seed sources into SQL INSERT statements.
//
// Every source is loaded and checked for its declared columns before any
// statement is generated. The output file is replaced atomically and only
// when every table loaded.
package inserts

import (
	"fmt"
	"log"
	"strings"

	"ofods/internal/config"
	"ofods/internal/metrics"
	"ofods/internal/output"
)

// Result summarizes a successful run.
type Result struct {
	Tables     int
	Statements int
	Digest     string
}

// Statements renders tables in order, one statement per record.
func Statements(tables []Table, mode string) []string {
	var out []string
	for _, t := range tables {
		for _, vals := range t.Values {
			out = append(out, Statement(t.Spec.Table, t.Spec.Columns, vals, mode))
		}
	}
	return out
}

// Run loads cfg.Tables, renders their statements and writes them to
// cfg.Output joined by newlines.
func Run(job string, cfg config.Inserts) (Result, error) {
	tables, err := Load(job, cfg.Tables)
	if err != nil {
		return Result{}, err
	}

	stmts := Statements(tables, cfg.QuoteMode)
	for _, t := range tables {
		metrics.RecordRows(job, "statements", t.Spec.Table, int64(len(t.Values)))
	}

	data := []byte(strings.Join(stmts, "\n"))
	done := metrics.StartStep(job, "inserts_write")
	err = output.WriteFile(cfg.Output, data)
	done(err)
	if err != nil {
		return Result{}, fmt.Errorf("inserts: %w", err)
	}

	res := Result{Tables: len(tables), Statements: len(stmts), Digest: output.Digest(data)}
	log.Printf("inserts: wrote path=%s tables=%d statements=%d xxh3=%s", cfg.Output, res.Tables, res.Statements, res.Digest)
	return res, nil
}
