// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Catalogue sources:

  - embedded: the seed bundled into the binary (default).
  - file: a YAML or JSON document at CATALOG_FILE.
  - postgres: a one-shot snapshot of the catalog schema at DATABASE_URL.

Whatever the source, the catalogue is read once at startup and never reloaded.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/tankobon/pkg/pagination"
)

// Supported values of CATALOG_SOURCE.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the catalogue service and CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Catalogue loading
	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"embedded"`
	CatalogFile   string `env:"CATALOG_FILE"`

	// CatalogLocale is the BCP-47 tag used for alphabetical collation.
	CatalogLocale string `env:"CATALOG_LOCALE" envDefault:"pt-BR"`

	// CatalogPageSize is the fixed page size of catalogue views.
	CatalogPageSize int `env:"CATALOG_PAGE_SIZE" envDefault:"12"`

	// Relational Database (PostgreSQL), only read when CatalogSource is postgres.
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"false"`

	// View sessions. An empty RedisURL keeps sessions in process memory.
	RedisURL   string        `env:"REDIS_URL"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"tankobon.app"`

	// Observability
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and checks that
// the chosen catalogue source has what it needs.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports inconsistent combinations of settings.
func (c *Config) Validate() error {
	switch c.CatalogSource {
	case SourceEmbedded:
	case SourceFile:
		if c.CatalogFile == "" {
			return fmt.Errorf("config: CATALOG_FILE is required when CATALOG_SOURCE=%s", SourceFile)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required when CATALOG_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("config: unknown CATALOG_SOURCE %q", c.CatalogSource)
	}

	if c.CatalogPageSize < 1 || c.CatalogPageSize > pagination.MaxLimit {
		return fmt.Errorf("config: CATALOG_PAGE_SIZE must be between 1 and %d, got %d", pagination.MaxLimit, c.CatalogPageSize)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive, got %s", c.SessionTTL)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
