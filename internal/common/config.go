// Package common provides shared utilities for Folio
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Folio
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Registry    RegistryConfig `toml:"registry"`
	Catalog     CatalogConfig  `toml:"catalog"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// RegistryConfig holds fund registry client configuration.
// The registry is the upstream source of truth for fund metadata.
type RegistryConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *RegistryConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// CatalogConfig holds fund catalog cache configuration.
type CatalogConfig struct {
	Path    string `toml:"path"`    // directory for the disk snapshot
	Refresh string `toml:"refresh"` // freshness window, duration string
}

// GetRefresh parses and returns the catalog freshness window.
func (c *CatalogConfig) GetRefresh() time.Duration {
	d, err := time.ParseDuration(c.Refresh)
	if err != nil || d <= 0 {
		return FreshnessFundCatalog
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8086,
		},
		Registry: RegistryConfig{
			BaseURL:   "http://localhost:3501",
			RateLimit: 10,
			Timeout:   "60s",
		},
		Catalog: CatalogConfig{
			Path:    "data/catalog",
			Refresh: "30m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FOLIO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("FOLIO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("FOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("FOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// FOLIO_REGISTRY_URL wins over the legacy BACKEND_URL name.
	if url := os.Getenv("BACKEND_URL"); url != "" {
		config.Registry.BaseURL = url
	}
	if url := os.Getenv("FOLIO_REGISTRY_URL"); url != "" {
		config.Registry.BaseURL = url
	}

	if path := os.Getenv("FOLIO_DATA_PATH"); path != "" {
		config.Catalog.Path = path
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
