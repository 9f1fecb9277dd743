// Package config loads CLI configuration in layers: struct defaults, an
// optional YAML config file, then APIDOC_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/apidoc-dev/apidoc/internal/model"
)

// Config holds the resolved settings. Command flags may still override any
// of these per invocation.
type Config struct {
	Store       string `koanf:"store"`        // project store file path
	Format      string `koanf:"format"`       // default export format
	Theme       string `koanf:"theme"`        // HTML theme name
	SpecVersion string `koanf:"spec_version"` // emitted OpenAPI version
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:      "openapi",
		Theme:       "default",
		SpecVersion: model.DefaultSpecVersion,
	}
}

const envPrefix = "APIDOC_"

// Load resolves the configuration. path may be empty to skip the file layer;
// environment variables like APIDOC_FORMAT take precedence over the file.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}
	if strings.TrimSpace(path) != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
