// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"packaging-quote/internal/errors"
	"packaging-quote/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Engine contains quote engine settings
	Engine EngineConfig `json:"engine"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Quote holds defaults applied to incomplete requests
	Quote QuoteDefaults `json:"quote"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// EngineConfig contains quote engine settings
type EngineConfig struct {
	// MaxCacheEntries caps memoized quotes; 0 means unbounded
	MaxCacheEntries int `json:"max_cache_entries"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowBreakdown prints the itemized cost breakdown
	ShowBreakdown bool `json:"show_breakdown"`
}

// QuoteDefaults fill request fields the caller left empty
type QuoteDefaults struct {
	PrintingType       string `json:"printing_type"`
	PrintingColors     int    `json:"printing_colors"`
	Urgency            string `json:"urgency"`
	DeliveryLocation   string `json:"delivery_location"`
	ThicknessSelection string `json:"thickness_selection"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Engine: EngineConfig{
			MaxCacheEntries: 0,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowBreakdown: true,
		},
		Quote: QuoteDefaults{
			PrintingType:       "digital",
			PrintingColors:     1,
			Urgency:            "standard",
			DeliveryLocation:   "domestic",
			ThicknessSelection: "medium",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.packaging-quote.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".packaging-quote.json"
	}
	return filepath.Join(homeDir, ".packaging-quote.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config "+path, err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("failed to parse config "+path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case "cli", "json":
	default:
		return errors.Newf(errors.TypeConfig, "unsupported output format %q", c.Output.DefaultFormat)
	}
	if c.Engine.MaxCacheEntries < 0 {
		return errors.Newf(errors.TypeConfig, "max_cache_entries must not be negative, got %d", c.Engine.MaxCacheEntries)
	}
	if c.Quote.PrintingColors < 0 {
		return errors.Newf(errors.TypeConfig, "printing_colors must not be negative, got %d", c.Quote.PrintingColors)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
