package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/apidoc-dev/apidoc/internal/config"
	"github.com/apidoc-dev/apidoc/internal/export"
	"github.com/apidoc-dev/apidoc/internal/store"
)

// ExportConfig captures the inputs of the export command after merging
// defaults, config file and environment values, and CLI overrides.
type ExportConfig struct {
	Store       string
	Format      string
	Out         string
	Theme       string
	SpecVersion string
}

func newExportCmd(log zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a project store as OpenAPI, Markdown, or HTML",
		Example: strings.TrimSpace(`  apidoc export --store project.json --format openapi -o openapi.json
  apidoc export --store project.json --format html -o docs.html`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveExportConfig(cmd)
			if err != nil {
				return err
			}
			return runExport(cmd, log, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("store", "", "Path to the project store file")
	flags.String("format", "", "Output format: openapi, markdown, html")
	flags.StringP("out", "o", "", "Output file (stdout when omitted)")
	flags.String("theme", "", "HTML theme name")
	flags.String("spec-version", "", "OpenAPI version to emit")

	return cmd
}

func resolveExportConfig(cmd *cobra.Command) (*ExportConfig, error) {
	base, err := loadBaseConfig(cmd)
	if err != nil {
		return nil, err
	}

	cfg := &ExportConfig{
		Store:       base.Store,
		Format:      base.Format,
		Theme:       base.Theme,
		SpecVersion: base.SpecVersion,
	}
	if err := applyExportFlagOverrides(cmd.Flags(), cfg); err != nil {
		return nil, err
	}

	cfg.Store = strings.TrimSpace(cfg.Store)
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if cfg.Store == "" {
		return nil, newUsageError("export: --store is required (set via flag, config file, or APIDOC_STORE)")
	}
	switch cfg.Format {
	case "openapi", "markdown", "html":
	default:
		return nil, newUsageError(fmt.Sprintf("export: unsupported --format %q (allowed: openapi, markdown, html)", cfg.Format))
	}
	return cfg, nil
}

func applyExportFlagOverrides(flags *pflag.FlagSet, cfg *ExportConfig) error {
	if flags.Changed("store") {
		value, err := flags.GetString("store")
		if err != nil {
			return err
		}
		cfg.Store = value
	}
	if flags.Changed("format") {
		value, err := flags.GetString("format")
		if err != nil {
			return err
		}
		cfg.Format = value
	}
	if flags.Changed("out") {
		value, err := flags.GetString("out")
		if err != nil {
			return err
		}
		cfg.Out = strings.TrimSpace(value)
	}
	if flags.Changed("theme") {
		value, err := flags.GetString("theme")
		if err != nil {
			return err
		}
		cfg.Theme = strings.TrimSpace(value)
	}
	if flags.Changed("spec-version") {
		value, err := flags.GetString("spec-version")
		if err != nil {
			return err
		}
		cfg.SpecVersion = strings.TrimSpace(value)
	}
	return nil
}

// loadBaseConfig resolves the layered configuration shared by all commands.
func loadBaseConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(strings.TrimSpace(path))
	if err != nil {
		return config.Config{}, newUsageError(err.Error())
	}
	return cfg, nil
}

func runExport(cmd *cobra.Command, log zerolog.Logger, cfg *ExportConfig) error {
	if _, err := os.Stat(cfg.Store); err != nil {
		return newUsageError(fmt.Sprintf("export: project store %q not found", cfg.Store))
	}
	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}

	project := st.Project()
	endpoints := st.Endpoints()
	log.Info().Str("store", cfg.Store).Str("format", cfg.Format).
		Int("endpoints", len(endpoints)).Msg("exporting documentation")

	var exporter export.Exporter
	switch cfg.Format {
	case "openapi":
		exporter = &export.OpenAPIExporter{Options: export.OpenAPIOptions{SpecVersion: cfg.SpecVersion}}
	case "markdown":
		exporter = export.NewMarkdownExporter()
	case "html":
		exporter = &export.HTMLExporter{Options: export.HTMLOptions{Theme: cfg.Theme}}
	}

	out := cmd.OutOrStdout()
	if cfg.Out != "" {
		f, err := os.Create(cfg.Out)
		if err != nil {
			return fmt.Errorf("export: create %s: %w", cfg.Out, err)
		}
		defer f.Close()
		out = f
	}

	if err := exporter.Export(&project, endpoints, out); err != nil {
		return err
	}
	if cfg.Out != "" {
		log.Info().Str("out", cfg.Out).Msg("wrote documentation")
	}
	return nil
}
