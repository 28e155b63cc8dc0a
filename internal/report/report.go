// Package report runs the aggregate reporting queries and renders them to a
// text file and the console.
//
// Every query runs before anything is written, so a failed run leaves the
// previous report file untouched. Database failures are returned as
// *db.Error; Describe turns any failure into its user-facing line.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"

	"ofods/internal/db"
	"ofods/internal/metrics"
	"ofods/internal/output"
)

// Generator renders a fixed list of queries into one report.
type Generator struct {
	// Job labels logs and metrics.
	Job string

	// Queries run in order; nil means Queries().
	Queries []Query

	// OutputPath is the report file, replaced on success.
	OutputPath string

	// Console receives the mirrored sections and status lines.
	Console io.Writer
}

// New returns a Generator for the built-in queries.
func New(job, outputPath string, console io.Writer) *Generator {
	return &Generator{
		Job:        job,
		Queries:    Queries(),
		OutputPath: outputPath,
		Console:    console,
	}
}

// Generate runs every query against conn, then writes the report file and
// mirrors the sections to the console. The first failing query aborts the
// rest.
func (g *Generator) Generate(ctx context.Context, conn Querier) error {
	queries := g.Queries
	if queries == nil {
		queries = Queries()
	}

	sections := make([]Section, 0, len(queries))
	for _, q := range queries {
		done := metrics.StartStep(g.Job, "report_query")
		sec, err := Collect(ctx, conn, q)
		done(err)
		if err != nil {
			return err
		}
		metrics.RecordRows(g.Job, "report_rows", q.Title, int64(len(sec.Lines)))
		log.Printf("report: section=%q rows=%d", q.Title, len(sec.Lines))
		sections = append(sections, sec)
	}

	data := Render(sections)
	done := metrics.StartStep(g.Job, "report_write")
	err := output.WriteFile(g.OutputPath, data)
	done(err)
	if err != nil {
		return err
	}
	log.Printf("report: wrote path=%s bytes=%d xxh3=%s", g.OutputPath, len(data), output.Digest(data))

	for i, s := range sections {
		prefix := "\n"
		if i > 0 {
			prefix = "\n\n"
		}
		if _, err := io.WriteString(g.Console, prefix); err != nil {
			return err
		}
		if err := s.WriteConsole(g.Console); err != nil {
			return err
		}
	}
	fmt.Fprintf(g.Console, "\nComplex Reports successfully saved to %s\n", g.OutputPath)
	return nil
}

// Run connects with cfg, generates the report, and closes the connection on
// every path. The connect and close status lines go to g.Console.
func Run(ctx context.Context, cfg db.Config, g *Generator) error {
	opened := false
	err := db.WithConn(ctx, cfg, func(ctx context.Context, conn *sql.DB) error {
		opened = true
		fmt.Fprintf(g.Console, "Successfully connected to the database.\n")
		return g.Generate(ctx, conn)
	})
	if opened {
		fmt.Fprintln(g.Console, "Database connection closed.")
	}
	return err
}

// Describe returns the line reported for a failed run: database failures
// and every other failure are told apart.
func Describe(err error) string {
	if db.IsDBError(err) {
		return fmt.Sprintf("Database Error: %v", err)
	}
	return fmt.Sprintf("Unexpected Error: %v", err)
}
