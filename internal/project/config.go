// Package project loads envied.yml, the per-project configuration that
// pins where schemas live and where generated code lands.
package project

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the project-level generation settings.
type Config struct {
	// SchemaDir is where *.envied.yml schema files are discovered.
	SchemaDir string
	// OutputDir is where generated units are written.
	OutputDir string
	// Package is the Go package name of the generated units.
	Package string
	// EnvFile, when set, is loaded into the process environment before
	// generation runs.
	EnvFile string
	// Seed, when set, pins the keystream seed for every obfuscated
	// field that doesn't pin its own.
	Seed *int64
}

// Defaults returns the configuration used when no envied.yml exists.
func Defaults() *Config {
	return &Config{
		SchemaDir: ".",
		OutputDir: "internal/env",
		Package:   "env",
	}
}

// Load reads envied.yml from the current directory. A missing file is
// not an error; defaults apply. ENVIED_* environment variables override
// file values either way.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("envied")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("ENVIED")

	cfg := Defaults()
	v.SetDefault("generate.schema_dir", cfg.SchemaDir)
	v.SetDefault("generate.output", cfg.OutputDir)
	v.SetDefault("generate.package", cfg.Package)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read envied.yml: %w", err)
		}
	}

	cfg.SchemaDir = v.GetString("generate.schema_dir")
	cfg.OutputDir = v.GetString("generate.output")
	cfg.Package = v.GetString("generate.package")
	cfg.EnvFile = v.GetString("generate.env_file")
	if v.IsSet("generate.seed") {
		seed := v.GetInt64("generate.seed")
		cfg.Seed = &seed
	}

	if cfg.Package == "" {
		return nil, fmt.Errorf("generate.package must not be empty in envied.yml")
	}
	if _, err := os.Stat(cfg.SchemaDir); err != nil {
		return nil, fmt.Errorf("schema directory %s not found", cfg.SchemaDir)
	}

	return cfg, nil
}
