// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Storage kinds accepted by STORAGE_KIND.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Filter  FilterConfig
	Session SessionConfig
	Storage StorageConfig
	Catalog CatalogConfig
	Logging LoggingConfig
	App     AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// FilterConfig holds defaults for every room listing.
type FilterConfig struct {
	// Debounce delays recomputation after a filter change.
	Debounce time.Duration `env:"FILTER_DEBOUNCE" envDefault:"150ms"`

	// SearchDebounce delays applying typed search text.
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`

	// PageSize is used when a client does not ask for one. Zero disables pagination.
	PageSize int `env:"PAGE_SIZE" envDefault:"10"`

	// Locale orders room names, as a BCP 47 tag.
	Locale string `env:"LOCALE" envDefault:"en"`
}

// SessionConfig holds session lifetime settings.
type SessionConfig struct {
	IdleTimeout   time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
	MaxSessions   int           `env:"SESSION_MAX" envDefault:"10000"`
	BasePath      string        `env:"SESSION_BASE_PATH" envDefault:"/rooms"`
}

// StorageConfig selects where listing state is persisted.
type StorageConfig struct {
	Kind string `env:"STORAGE_KIND" envDefault:"memory"`
	Dir  string `env:"STORAGE_DIR" envDefault:"var/state"`
}

// CatalogConfig points at the room catalog.
type CatalogConfig struct {
	Path string `env:"CATALOG_PATH" envDefault:"data/rooms.yaml"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	positive := []struct {
		name  string
		value time.Duration
	}{
		{"SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout},
		{"SESSION_IDLE_TIMEOUT", cfg.Session.IdleTimeout},
		{"SESSION_SWEEP_INTERVAL", cfg.Session.SweepInterval},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive", p.name)
		}
	}

	// Negative debounce means synchronous updates.
	if cfg.Filter.Debounce == 0 {
		return fmt.Errorf("FILTER_DEBOUNCE must not be zero; use a negative value for synchronous updates")
	}
	if cfg.Filter.SearchDebounce == 0 {
		return fmt.Errorf("SEARCH_DEBOUNCE must not be zero; use a negative value for synchronous updates")
	}

	if cfg.Session.SweepInterval > cfg.Session.IdleTimeout {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL (%s) should not exceed SESSION_IDLE_TIMEOUT (%s)",
			cfg.Session.SweepInterval, cfg.Session.IdleTimeout)
	}

	if cfg.Filter.PageSize < 0 || cfg.Filter.PageSize > 100 {
		return fmt.Errorf("PAGE_SIZE must be between 0 and 100, got %d", cfg.Filter.PageSize)
	}
	if cfg.Filter.Locale == "" {
		return fmt.Errorf("LOCALE must not be empty")
	}
	if cfg.Session.MaxSessions < 0 {
		return fmt.Errorf("SESSION_MAX must not be negative, got %d", cfg.Session.MaxSessions)
	}
	if cfg.Session.BasePath == "" || cfg.Session.BasePath[0] != '/' {
		return fmt.Errorf("SESSION_BASE_PATH must start with /, got %q", cfg.Session.BasePath)
	}

	switch cfg.Storage.Kind {
	case StorageMemory:
	case StorageFile:
		if cfg.Storage.Dir == "" {
			return fmt.Errorf("STORAGE_DIR is required when STORAGE_KIND is %q", StorageFile)
		}
	default:
		return fmt.Errorf("STORAGE_KIND must be one of: memory, file; got %q", cfg.Storage.Kind)
	}

	if cfg.Catalog.Path == "" {
		return fmt.Errorf("CATALOG_PATH must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
