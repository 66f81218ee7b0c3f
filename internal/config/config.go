// Package config loads and validates service configuration from YAML
// or JSON5 files with environment variable expansion.
package config

import (
	"fmt"
	"strings"
)

// Config is the full service configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Tracing TracingConfig `yaml:"tracing"`
	Storage StorageConfig `yaml:"storage"`
	Planner PlannerConfig `yaml:"planner"`
	Host    HostConfig    `yaml:"host"`
}

type LogConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

type TracingConfig struct {
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"sampling_rate"`
	Environment  string  `yaml:"environment"`
	Insecure     bool    `yaml:"insecure"`
}

// StorageConfig selects the canvas object store backend.
type StorageConfig struct {
	// Driver is "memory", "sqlite", or "postgres".
	Driver string `yaml:"driver"`

	// Path is the database file for the sqlite driver.
	Path string `yaml:"path"`

	// DSN is the connection string for the postgres driver.
	DSN string `yaml:"dsn"`
}

// PlannerConfig selects and configures the language model backend.
type PlannerConfig struct {
	// Provider is "openai" or "anthropic".
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
}

type HostConfig struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// DefaultCanvas is the canvas used when a request names none.
	DefaultCanvas string `yaml:"default_canvas"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Format: "json"},
		Storage: StorageConfig{Driver: "memory"},
		Planner: PlannerConfig{Provider: "anthropic"},
		Host:    HostConfig{Addr: ":8080", DefaultCanvas: "default"},
	}
}

// applyDefaults fills unset fields after decoding.
func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Planner.Provider == "" {
		c.Planner.Provider = defaults.Planner.Provider
	}
	if c.Host.Addr == "" {
		c.Host.Addr = defaults.Host.Addr
	}
	if c.Host.DefaultCanvas == "" {
		c.Host.DefaultCanvas = defaults.Host.DefaultCanvas
	}
}

// Validate rejects configurations that cannot be acted on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case "memory":
	case "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage: sqlite driver requires path")
		}
	case "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage: postgres driver requires dsn")
		}
	default:
		return fmt.Errorf("storage: unknown driver %q", c.Storage.Driver)
	}

	switch strings.ToLower(c.Planner.Provider) {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("planner: unknown provider %q", c.Planner.Provider)
	}
	return nil
}
