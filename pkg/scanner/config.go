package scanner

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all scanner configuration.
type Config struct {
	// Root directory of the source tree to scan
	Root string `json:"root" yaml:"root"`

	// File extensions considered source files
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Incremental mode reconciles against the prior snapshot
	Incremental bool `json:"incremental" yaml:"incremental"`

	// Archive appends each snapshot to the history store
	Archive bool `json:"archive" yaml:"archive"`

	// Serve configuration for the snapshot server
	Serve ServeConfig `json:"serve" yaml:"serve"`

	// Verbose logging
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Debug mode
	Debug bool `json:"debug" yaml:"debug"`
}

// ServeConfig holds snapshot server configuration.
type ServeConfig struct {
	// Listen port
	Port int `json:"port" yaml:"port"`

	// Requests per second allowed. Zero disables limiting.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// Rate limiter burst size
	Burst int `json:"burst" yaml:"burst"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Extensions:  []string{".js", ".mjs", ".ts", ".java"},
		Incremental: false,
		Archive:     false,
		Serve: ServeConfig{
			Port:      8080,
			RateLimit: 0,
			Burst:     10,
		},
		Verbose: false,
		Debug:   false,
	}
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if len(path) > 5 && path[len(path)-5:] == ".json" {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root directory is required")
	}

	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one file extension is required")
	}

	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve port must be between 0 and 65535")
	}

	if c.Serve.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}

	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	data, _ := json.Marshal(c)
	clone := &Config{}
	json.Unmarshal(data, clone)
	return clone
}
