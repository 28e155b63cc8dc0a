package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ofods/internal/config"
	"ofods/internal/inserts"
)

type insertsOptions struct {
	output       string
	escapeQuotes bool
}

func newInsertsCmd(root *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	opts := &insertsOptions{}
	cmd := &cobra.Command{
		Use:   "inserts",
		Short: "Convert the seed sources into INSERT statements",
		Long: `Loads every declared table source, checks each record for the declared
columns, and writes one INSERT statement per record to the output file.
Any failure aborts the run before the output file is touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInserts(root, opts, stdout, stderr)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "SQL file (default from configuration: insert_data.sql)")
	f.BoolVar(&opts.escapeQuotes, "escape-quotes", false, "double embedded single quotes (quote_mode=escape)")
	return cmd
}

func runInserts(root *rootOptions, opts *insertsOptions, stdout, stderr io.Writer) error {
	c, err := loadConfig(root)
	if err != nil {
		return err
	}
	if opts.output != "" {
		c.Inserts.Output = opts.output
	}
	if opts.escapeQuotes {
		c.Inserts.QuoteMode = config.QuoteEscape
	}

	if err := checkIssues(stderr, configName(root), config.ValidateInserts(c.Inserts)); err != nil {
		return err
	}

	flush := startMetrics(root, c.Job)
	defer flush()

	res, err := inserts.Run(c.Job, c.Inserts)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "SQL INSERT statements saved to %s (%d statements from %d tables)\n", c.Inserts.Output, res.Statements, res.Tables)
	return nil
}
