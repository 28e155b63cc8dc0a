package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"ofods/internal/config"
	"ofods/internal/report"
)

type reportOptions struct {
	output   string
	driver   string
	dsn      string
	server   string
	database string
	strict   bool
}

func newReportCmd(root *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the aggregate reports and write the report file",
		Long: `Runs the three aggregate queries (orders per customer, most ordered menu
items, revenue per restaurant), writes them to the report file and mirrors
them to the console.

A database or unexpected error is reported on stdout and the command exits
0, matching how the report has always been scheduled; --strict makes it
exit 1 instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), root, opts, stdout, stderr)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "report file (default from configuration: Report.txt)")
	f.StringVar(&opts.driver, "driver", "", "database driver: sqlserver, postgres, mysql or sqlite")
	f.StringVar(&opts.dsn, "dsn", "", "driver connection string; wins over --server/--database")
	f.StringVar(&opts.server, "server", "", "SQL Server host")
	f.StringVar(&opts.database, "database", "", "SQL Server database name")
	f.BoolVar(&opts.strict, "strict", false, "exit non-zero when the report fails")
	return cmd
}

func runReport(ctx context.Context, root *rootOptions, opts *reportOptions, stdout, stderr io.Writer) error {
	c, err := loadConfig(root)
	if err != nil {
		return err
	}
	applyReportFlags(&c, opts)

	issues := append(config.ValidateDatabase(c.Database), config.ValidateReport(c.Report)...)
	if err := checkIssues(stderr, configName(root), issues); err != nil {
		return err
	}

	flush := startMetrics(root, c.Job)
	defer flush()

	start := time.Now()
	log.Printf("report: driver=%s output=%s", c.Database.Driver, c.Report.Output)
	err = report.Run(ctx, dbConfig(c.Database), report.New(c.Job, c.Report.Output, stdout))
	if err != nil {
		fmt.Fprintln(stdout, report.Describe(err))
		if opts.strict {
			return err
		}
		return nil
	}
	log.Printf("report: completed in %s", time.Since(start).Truncate(time.Millisecond))
	return nil
}

// applyReportFlags lets non-empty flags override the loaded configuration.
// A --driver other than the configured one drops the configured DSN.
func applyReportFlags(c *config.Config, opts *reportOptions) {
	if opts.driver != "" && opts.driver != c.Database.Driver {
		c.Database.Driver = opts.driver
		c.Database.DSN = ""
	}
	if opts.dsn != "" {
		c.Database.DSN = opts.dsn
	}
	if opts.server != "" {
		c.Database.Server = opts.server
	}
	if opts.database != "" {
		c.Database.Name = opts.database
	}
	if opts.output != "" {
		c.Report.Output = opts.output
	}
}
