package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/apidoc-dev/apidoc/internal/imports"
	"github.com/apidoc-dev/apidoc/internal/store"
)

func newImportCmd(log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <input-file>",
		Short: "Import a Postman collection or OpenAPI/Swagger spec into a project store",
		Example: strings.TrimSpace(`  apidoc import --store project.json --from postman collection.json
  apidoc import --store project.json --from openapi spec.yaml`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, log, args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("store", "", "Path to the project store file (created when missing)")
	flags.String("from", "", "Source format: postman, openapi")

	return cmd
}

func runImport(cmd *cobra.Command, log zerolog.Logger, inputPath string) error {
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
		return newUsageError("import: --store is required (set via flag, config file, or APIDOC_STORE)")
	}

	from, _ := cmd.Flags().GetString("from")
	from = strings.ToLower(strings.TrimSpace(from))
	if from == "" {
		return newUsageError("import: --from is required (postman or openapi)")
	}
	importer, ok := imports.ForFormat(from)
	if !ok {
		return newUsageError(fmt.Sprintf("import: unsupported --from %q (allowed: postman, openapi)", from))
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return newUsageError(fmt.Sprintf("import: read %s: %v", inputPath, err))
	}

	st, err := store.Open(storePath)
	if err != nil {
		return err
	}

	result, err := importer.Import(raw, st.Project().ID)
	if err != nil {
		var ie *imports.ImportError
		if errors.As(err, &ie) {
			return newUsageError(fmt.Sprintf("import: %s (%s)", ie.Message, ie.Code))
		}
		return err
	}

	imported, skipped := st.Merge(result.ProjectPatch, result.Endpoints)
	if err := st.Save(); err != nil {
		return err
	}

	log.Info().Str("store", storePath).Str("from", from).
		Int("imported", imported).Int("skipped", skipped).Msg("import finished")
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d endpoints, skipped %d duplicates\n", imported, skipped)
	return nil
}
