// Package config loads and saves the salesdesk configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all salesdesk configuration.
type Config struct {
	// Backend connection
	Backend BackendConfig `yaml:"backend"`

	// Local cache database
	Cache CacheConfig `yaml:"cache"`

	// Static asset resolution
	Assets AssetsConfig `yaml:"assets"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig configures the admin backend endpoint.
type BackendConfig struct {
	Endpoint string `yaml:"endpoint"`
	Locale   string `yaml:"locale"`  // empty = detect from environment
	Timeout  string `yaml:"timeout"` // HTTP round-trip timeout
}

// CacheConfig configures the last-known-good snapshot store.
type CacheConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// AssetsConfig configures filesystem icon fallback.
type AssetsConfig struct {
	BasePath string `yaml:"base_path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`   // empty = stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			Endpoint: "http://localhost:8080/backend",
			Timeout:  "30s",
		},
		Cache: CacheConfig{
			DatabasePath: "data/salesdesk.db",
		},
		Assets: AssetsConfig{
			BasePath: "/assets/icons",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "salesdesk.yaml"
	}
	return filepath.Join(home, ".salesdesk", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file is not an
// error; defaults (plus environment overrides) apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SALESDESK_ENDPOINT"); v != "" {
		c.Backend.Endpoint = v
	}
	if v := os.Getenv("SALESDESK_LOCALE"); v != "" {
		c.Backend.Locale = v
	}
	if v := os.Getenv("SALESDESK_DB"); v != "" {
		c.Cache.DatabasePath = v
	}
	if v := os.Getenv("SALESDESK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SALESDESK_ASSET_BASE"); v != "" {
		c.Assets.BasePath = v
	}
}

// RequestTimeout parses the configured HTTP timeout, falling back to 30s
// on a missing or malformed value.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Backend.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
