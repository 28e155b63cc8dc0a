package config

import (
	"fmt"
	"strings"

	"ofods/internal/source"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that is surfaced but does not block.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "database.driver",
// "inserts.tables[4].options.record_path").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be returned as an error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// KnownDrivers lists the database drivers the binary is built with.
var KnownDrivers = []string{"sqlserver", "postgres", "mysql", "sqlite"}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate performs static checks over a decoded Config. It does not touch
// the filesystem or the database.
func Validate(c Config) []Issue {
	var issues []Issue
	if strings.TrimSpace(c.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics will be unlabeled",
		})
	}
	issues = append(issues, ValidateDatabase(c.Database)...)
	issues = append(issues, ValidateReport(c.Report)...)
	issues = append(issues, ValidateInserts(c.Inserts)...)
	return issues
}

// ValidateDatabase checks the reporting connection settings.
func ValidateDatabase(d Database) []Issue {
	var issues []Issue
	if !contains(KnownDrivers, d.Driver) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "database.driver",
			Message:  fmt.Sprintf("unsupported driver %q (supported: %s)", d.Driver, strings.Join(KnownDrivers, ", ")),
		})
		return issues
	}
	if d.DSN != "" {
		return issues
	}
	if d.Driver != "sqlserver" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "database.dsn",
			Message:  fmt.Sprintf("dsn is required for driver %q", d.Driver),
		})
		return issues
	}
	if strings.TrimSpace(d.Server) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "database.server",
			Message:  "server must not be empty when dsn is not set",
		})
	}
	if strings.TrimSpace(d.Name) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "database.database",
			Message:  "database must not be empty when dsn is not set",
		})
	}
	return issues
}

// ValidateReport checks the report settings.
func ValidateReport(r Report) []Issue {
	if strings.TrimSpace(r.Output) == "" {
		return []Issue{{Severity: SeverityError, Path: "report.output", Message: "output must not be empty"}}
	}
	return nil
}

// ValidateInserts checks the insert generator settings and every table
// declaration.
func ValidateInserts(in Inserts) []Issue {
	var issues []Issue
	if strings.TrimSpace(in.Output) == "" {
		issues = append(issues, Issue{Severity: SeverityError, Path: "inserts.output", Message: "output must not be empty"})
	}
	switch in.QuoteMode {
	case QuoteRaw, QuoteEscape:
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "inserts.quote_mode",
			Message:  fmt.Sprintf("unknown quote_mode %q (want %q or %q)", in.QuoteMode, QuoteRaw, QuoteEscape),
		})
	}
	if in.QuoteMode == QuoteRaw {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "inserts.quote_mode",
			Message:  "values containing a single quote will produce malformed statements",
		})
	}
	if len(in.Tables) == 0 {
		issues = append(issues, Issue{Severity: SeverityError, Path: "inserts.tables", Message: "at least one table must be declared"})
	}

	seen := make(map[string]int, len(in.Tables))
	for i, t := range in.Tables {
		p := fmt.Sprintf("inserts.tables[%d]", i)
		issues = append(issues, validateTable(p, t)...)
		if t.Table == "" {
			continue
		}
		if j, dup := seen[t.Table]; dup {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     p + ".table",
				Message:  fmt.Sprintf("table %q is also declared at inserts.tables[%d]", t.Table, j),
			})
			continue
		}
		seen[t.Table] = i
	}
	return issues
}

func validateTable(p string, t TableSpec) []Issue {
	var issues []Issue
	if strings.TrimSpace(t.Table) == "" {
		issues = append(issues, Issue{Severity: SeverityError, Path: p + ".table", Message: "table must not be empty"})
	}
	if strings.TrimSpace(t.Path) == "" {
		issues = append(issues, Issue{Severity: SeverityError, Path: p + ".path", Message: "path must not be empty"})
	}
	if len(t.Columns) == 0 {
		issues = append(issues, Issue{Severity: SeverityError, Path: p + ".columns", Message: "at least one column must be declared"})
	}
	cols := make(map[string]struct{}, len(t.Columns))
	for j, c := range t.Columns {
		if strings.TrimSpace(c) == "" {
			issues = append(issues, Issue{Severity: SeverityError, Path: fmt.Sprintf("%s.columns[%d]", p, j), Message: "column name must not be empty"})
			continue
		}
		if _, dup := cols[c]; dup {
			issues = append(issues, Issue{Severity: SeverityError, Path: fmt.Sprintf("%s.columns[%d]", p, j), Message: fmt.Sprintf("duplicate column %q", c)})
		}
		cols[c] = struct{}{}
	}

	format := t.Format
	if format == "" && t.Path != "" {
		format = source.DetectFormat(t.Path)
	}
	switch {
	case format == "" && t.Path != "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     p + ".format",
			Message:  fmt.Sprintf("cannot detect format of %q; set format explicitly", t.Path),
		})
	case format != "" && !contains(source.Formats, format):
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     p + ".format",
			Message:  fmt.Sprintf("unknown format %q (supported: %s)", format, strings.Join(source.Formats, ", ")),
		})
	case format == source.FormatXML && strings.Trim(t.Options.String("record_path", ""), "/") == "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     p + ".options.record_path",
			Message:  "xml sources need a record_path such as \"payments/payment\"",
		})
	}
	return issues
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
