package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ofods/internal/config"
	"ofods/internal/probe"
)

type probeOptions struct {
	format     string
	recordPath string
	columns    []string
	starter    bool
	table      string
}

func newProbeCmd(stdout io.Writer) *cobra.Command {
	opts := &probeOptions{}
	cmd := &cobra.Command{
		Use:   "probe <source>",
		Short: "Inspect a source file and print its records, columns and record paths",
		Long: `Reads one source with the adapter for its format and prints a JSON report:
the record count, the columns found, the declared columns (--columns) that
some records lack, and for xml the candidate record_path values.

With --starter a starter inserts.tables entry is printed instead, named
after the file unless --table is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := config.TableSpec{
				Path:    args[0],
				Format:  opts.format,
				Columns: opts.columns,
				Options: config.Options{},
			}
			if opts.recordPath != "" {
				spec.Options["record_path"] = opts.recordPath
			}
			rep, err := probe.Probe(spec)
			if err != nil {
				return err
			}

			var v any = rep
			if opts.starter {
				name := opts.table
				if name == "" {
					name = defaultTableName(args[0])
				}
				v = rep.TableSpec(name)
			}
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(v); err != nil {
				return fmt.Errorf("probe: encode: %w", err)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "", "source format; detected from the file name when empty")
	f.StringVar(&opts.recordPath, "record-path", "", "xml record path, e.g. payments/payment; discovered when empty")
	f.StringSliceVar(&opts.columns, "columns", nil, "declared columns to check, comma separated")
	f.BoolVar(&opts.starter, "starter", false, "print a starter table declaration instead of the report")
	f.StringVar(&opts.table, "table", "", "table name for --starter")
	return cmd
}

// defaultTableName derives a table name from a source file name, e.g.
// "menu_items.csv.gz" -> "Menu_Items".
func defaultTableName(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	parts := strings.Split(base, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "_")
}
