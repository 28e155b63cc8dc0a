package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ofods/internal/config"
)

func newValidateCmd(root *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and check that every source file exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(root)
			if err != nil {
				return err
			}
			issues := append(config.Validate(c), sourceIssues(c.Inserts)...)
			if err := checkIssues(stderr, configName(root), issues); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Configuration is valid: %s\n", configName(root))
			return nil
		},
	}
}

// sourceIssues reports declared sources that cannot be opened.
func sourceIssues(in config.Inserts) []config.Issue {
	var out []config.Issue
	for i, t := range in.Tables {
		if _, err := os.Stat(t.Path); err != nil {
			out = append(out, config.Issue{
				Severity: config.SeverityError,
				Path:     fmt.Sprintf("inserts.tables[%d].path", i),
				Message:  err.Error(),
			})
		}
	}
	return out
}
