// Package cli provides the apidoc command-line interface: exporting
// documentation from a project store, importing external API descriptions
// into it, and scoring documentation completeness.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Execute runs the apidoc CLI with the given logger.
func Execute(log zerolog.Logger) error {
	return NewRootCmd(log).Execute()
}

// NewRootCmd constructs the root command so tests can exercise the CLI
// without a process boundary.
func NewRootCmd(log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "apidoc",
		Short:         "Generate, import, and score API documentation",
		Long:          "apidoc renders a project store into OpenAPI, Markdown, or HTML documentation, imports Postman collections and OpenAPI/Swagger specs, and scores documentation completeness.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")

	for _, sub := range []*cobra.Command{
		newExportCmd(log),
		newImportCmd(log),
		newValidateCmd(log),
	} {
		// Turn cobra flag errors (like unknown flags) into usage errors that
		// also show the command's help text.
		sub.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
			return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
		})
		cmd.AddCommand(sub)
	}

	return cmd
}
