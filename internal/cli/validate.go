package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/apidoc-dev/apidoc/internal/store"
	"github.com/apidoc-dev/apidoc/internal/validate"
)

func newValidateCmd(log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate",
		Short:   "Score documentation completeness of a project store",
		Example: "  apidoc validate --store project.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, log)
		},
	}

	cmd.Flags().String("store", "", "Path to the project store file")

	return cmd
}

func runValidate(cmd *cobra.Command, log zerolog.Logger) error {
	base, err := loadBaseConfig(cmd)
	if err != nil {
		return err
	}

	storePath := base.Store
	if cmd.Flags().Changed("store") {
		storePath, _ = cmd.Flags().GetString("store")
	}
	storePath = strings.TrimSpace(storePath)
	if storePath == "" {
		return newUsageError("validate: --store is required (set via flag, config file, or APIDOC_STORE)")
	}
	if _, err := os.Stat(storePath); err != nil {
		return newUsageError(fmt.Sprintf("validate: project store %q not found", storePath))
	}

	st, err := store.Open(storePath)
	if err != nil {
		return err
	}

	project := st.Project()
	endpoints := st.Endpoints()
	report := validate.Evaluate(&project, endpoints)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Score: %d/100 (%s)\n", report.Score, report.Status)
	fmt.Fprintf(out, "Endpoints: %d (%d tagged, %d documented, %d with examples)\n",
		report.Statistics.Endpoints, report.Statistics.Tagged,
		report.Statistics.Documented, report.Statistics.WithExamples)
	if len(report.Issues) > 0 {
		fmt.Fprintln(out, "Issues:")
		for _, issue := range report.Issues {
			fmt.Fprintf(out, "  - %s\n", issue)
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintln(out, "Warnings:")
		for _, warning := range report.Warnings {
			fmt.Fprintf(out, "  - %s\n", warning)
		}
	}

	log.Info().Int("score", report.Score).Str("status", report.Status).
		Int("issues", len(report.Issues)).Int("warnings", len(report.Warnings)).
		Msg("validation finished")

	if report.Status == validate.StatusPoor {
		return fmt.Errorf("validate: documentation quality is poor (score %d)", report.Score)
	}
	return nil
}
