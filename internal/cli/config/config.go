// Package config provides configuration management for the sqlframe CLI.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/nao1215/sqlframe"
)

// Defaults
const (
	DefaultSchema      = "untyped"
	DefaultIdentifiers = "verbatim"
	DefaultFormat      = "table"
	envPrefix          = "SQLFRAME_"
)

// configFileNames are searched in the working directory when --config is not given.
var configFileNames = []string{"sqlframe.yaml", "sqlframe.yml"}

// Output formats accepted by the import command.
var formats = map[string]bool{
	"table": true,
	"csv":   true,
	"json":  true,
}

// Config holds all CLI configuration options.
type Config struct {
	Database    string `koanf:"database"`
	Schema      string `koanf:"schema"`
	Identifiers string `koanf:"identifiers"`
	Format      string `koanf:"format"`
	Verbose     bool   `koanf:"verbose"`

	// FileUsed is the config file that was loaded, if any.
	FileUsed string `koanf:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Database:    sqlframe.DefaultDatabase,
		Schema:      DefaultSchema,
		Identifiers: DefaultIdentifiers,
		Format:      DefaultFormat,
	}
}

// findConfigFile returns the config file to use.
// Priority: explicit path > sqlframe.yaml > sqlframe.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load reads configuration from defaults, the config file, SQLFRAME_*
// environment variables and explicitly set flags, in increasing order of
// precedence. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	defaults := Default()

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"database":    defaults.Database,
		"schema":      defaults.Schema,
		"identifiers": defaults.Identifiers,
		"format":      defaults.Format,
		"verbose":     defaults.Verbose,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	fileUsed := findConfigFile(cfgFile)
	if fileUsed != "" {
		if err := k.Load(file.Provider(fileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", fileUsed, err)
		}
	}

	// 3. Environment variables: SQLFRAME_DATABASE -> database
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those set on the command line
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = fileUsed

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return errors.New("database path must not be empty")
	}
	if _, ok := sqlframe.ParseSchemaMode(c.Schema); !ok {
		return fmt.Errorf("invalid schema %q: want untyped or inferred", c.Schema)
	}
	if _, ok := sqlframe.ParseIdentifierPolicy(c.Identifiers); !ok {
		return fmt.Errorf("invalid identifiers %q: want verbatim, quoted or strict", c.Identifiers)
	}
	if !formats[strings.ToLower(c.Format)] {
		return fmt.Errorf("invalid format %q: want table, csv or json", c.Format)
	}
	return nil
}

// ExportOptions converts the configuration into export options.
func (c *Config) ExportOptions(observer sqlframe.Observer) sqlframe.ExportOptions {
	schema, _ := sqlframe.ParseSchemaMode(c.Schema)
	policy, _ := sqlframe.ParseIdentifierPolicy(c.Identifiers)
	return sqlframe.NewExportOptions().
		WithDatabase(c.Database).
		WithSchemaMode(schema).
		WithIdentifierPolicy(policy).
		WithObserver(observer)
}

// ImportOptions converts the configuration into import options.
func (c *Config) ImportOptions(observer sqlframe.Observer) sqlframe.ImportOptions {
	return sqlframe.NewImportOptions().
		WithDatabase(c.Database).
		WithObserver(observer)
}

type (
	configKey struct{}
	loggerKey struct{}
)

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config stored by WithConfig, or the defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return Default()
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
