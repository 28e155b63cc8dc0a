// Package cli wires the ofods subcommands.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ofods/internal/config"
	"ofods/internal/db"
	"ofods/internal/metrics"
	"ofods/internal/metrics/datadog"
	"ofods/internal/metrics/prompush"

	// register every database backend and source format; the configuration
	// chooses which ones a run uses.
	_ "ofods/internal/db/all"
	_ "ofods/internal/parser/all"
)

type rootOptions struct {
	configPath     string
	verbose        bool
	metricsBackend string
	pushgatewayURL string
	statsdAddr     string
}

// NewRootCmd builds the command tree. Report and status text goes to stdout,
// logs and configuration issues to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ofods",
		Short: "Food-delivery reporting and seed-data generator",
		Long: `ofods runs the aggregate reports against the food-delivery database and
converts seed sources (csv, tsv, xlsx, json, yaml, xml) into INSERT statements.
probe inspects a new source before it is declared.

Without --config the built-in configuration is used. A .env file in the
working directory is loaded first; OFODS_DB_DRIVER, OFODS_DB_DSN,
OFODS_DB_SERVER and OFODS_DB_NAME override the configuration file, and
command flags override both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFlags(log.LstdFlags)
			if opts.verbose {
				log.SetOutput(stderr)
			} else {
				log.SetOutput(io.Discard)
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "configuration file (.json, .yaml or .yml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logs")
	pf.StringVar(&opts.metricsBackend, "metrics-backend", "", "metrics backend: none, pushgateway or datadog (default $METRICS_BACKEND, else none)")
	pf.StringVar(&opts.pushgatewayURL, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	pf.StringVar(&opts.statsdAddr, "statsd-addr", "", "DogStatsD address (overrides env DD_DOGSTATSD_URL)")

	root.AddCommand(
		newReportCmd(opts, stdout, stderr),
		newInsertsCmd(opts, stdout, stderr),
		newValidateCmd(opts, stdout, stderr),
		newProbeCmd(stdout),
	)
	return root
}

// Execute runs the command tree against the process arguments.
func Execute() error {
	root := NewRootCmd(os.Stdout, os.Stderr)
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// loadConfig reads .env, the configuration file and the environment, in
// increasing precedence.
func loadConfig(opts *rootOptions) (config.Config, error) {
	// a missing .env is normal
	_ = godotenv.Load()

	c, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	config.ApplyEnv(&c, os.Getenv)
	return c, nil
}

// checkIssues prints issues and fails when any is an error.
func checkIssues(w io.Writer, source string, issues []config.Issue) error {
	for _, iss := range issues {
		fmt.Fprintf(w, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return fmt.Errorf("configuration is invalid: %s", source)
	}
	return nil
}

func configName(opts *rootOptions) string {
	if opts.configPath == "" {
		return "built-in configuration"
	}
	return opts.configPath
}

func dbConfig(d config.Database) db.Config {
	return db.Config{Driver: d.Driver, DSN: d.DSN, Server: d.Server, Database: d.Name}
}

// metricsBackendName resolves the backend: the flag, then METRICS_BACKEND,
// then "none".
func metricsBackendName(flag string, getenv func(string) string) string {
	if flag != "" {
		return flag
	}
	if env := getenv("METRICS_BACKEND"); env != "" {
		return env
	}
	return "none"
}

// startMetrics installs the selected backend and returns the function that
// flushes it at the end of the command.
func startMetrics(opts *rootOptions, job string) func() {
	backend := metricsBackendName(opts.metricsBackend, os.Getenv)

	switch backend {
	case "pushgateway":
		gwURL := opts.pushgatewayURL
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return func() {}
		}
		log.Printf("metrics: url=%v, backend=%v, job_name=%v", gwURL, backend, job)
		metrics.SetBackend(b)

	case "datadog":
		addr := opts.statsdAddr
		if addr == "" {
			addr = os.Getenv("DD_DOGSTATSD_URL")
		}
		if addr == "" {
			addr = "127.0.0.1:8125"
		}
		b, err := datadog.NewBackend(datadog.Config{Addr: addr, GlobalTags: []string{"job:" + job}})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return func() {}
		}
		log.Printf("metrics: addr=%v, backend=%v, job_name=%v", addr, backend, job)
		metrics.SetBackend(b)

	case "none":
		log.Printf("metrics: disabled (backend=%q)", backend)
		return func() {}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backend)
		return func() {}
	}

	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}
