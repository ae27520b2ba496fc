package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"toolbridge/internal/logging"
)

// Config holds all toolbridge configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Call execution settings
	Execution ExecutionConfig `yaml:"execution"`

	// Builtin tool selection and behavior
	Tools ToolsConfig `yaml:"tools"`
}

// ToolsConfig selects which builtin tools are registered.
type ToolsConfig struct {
	// Enabled, when non-empty, is an allowlist of tool names.
	Enabled []string `yaml:"enabled,omitempty"`

	// Disabled tools are never registered, even if listed in Enabled.
	Disabled []string `yaml:"disabled,omitempty"`

	// Simulated upstream latency of the weather tool
	WeatherLatency string `yaml:"weather_latency"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "toolbridge",
		Version: "0.3.0",

		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},

		Execution: ExecutionConfig{
			DefaultTimeout:   "30s",
			BatchConcurrency: 0,
		},

		Tools: ToolsConfig{
			WeatherLatency: "0s",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			logging.Config("loaded config from %s", path)
		case os.IsNotExist(err):
			logging.Config("config %s not found, using defaults", path)
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Override with environment variables
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
	if level := os.Getenv("TOOLBRIDGE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("TOOLBRIDGE_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if timeout := os.Getenv("TOOLBRIDGE_TIMEOUT"); timeout != "" {
		c.Execution.DefaultTimeout = timeout
	}
	if disabled := os.Getenv("TOOLBRIDGE_DISABLED_TOOLS"); disabled != "" {
		c.Tools.Disabled = splitList(disabled)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetExecutionTimeout returns the per-invocation timeout as a duration.
func (c *Config) GetExecutionTimeout() time.Duration {
	d, err := time.ParseDuration(c.Execution.DefaultTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GetWeatherLatency returns the simulated weather latency as a duration.
func (c *Config) GetWeatherLatency() time.Duration {
	d, err := time.ParseDuration(c.Tools.WeatherLatency)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// IsToolEnabled reports whether the named tool should be registered.
func (c *Config) IsToolEnabled(name string) bool {
	for _, d := range c.Tools.Disabled {
		if d == name {
			return false
		}
	}
	if len(c.Tools.Enabled) == 0 {
		return true
	}
	for _, e := range c.Tools.Enabled {
		if e == name {
			return true
		}
	}
	return false
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted logging formats.
var ValidLogFormats = []string{"console", "json"}

// Validate validates the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.Logging.Level != "" && !contains(ValidLogLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels))
	}
	if c.Logging.Format != "" && !contains(ValidLogFormats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, ValidLogFormats))
	}

	if d, err := time.ParseDuration(c.Execution.DefaultTimeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid execution.default_timeout %q: %w", c.Execution.DefaultTimeout, err))
	} else if d <= 0 {
		errs = append(errs, fmt.Errorf("execution.default_timeout must be positive, got %s", d))
	}
	if c.Execution.BatchConcurrency < 0 {
		errs = append(errs, fmt.Errorf("execution.batch_concurrency must not be negative, got %d", c.Execution.BatchConcurrency))
	}

	if c.Tools.WeatherLatency != "" {
		if d, err := time.ParseDuration(c.Tools.WeatherLatency); err != nil {
			errs = append(errs, fmt.Errorf("invalid tools.weather_latency %q: %w", c.Tools.WeatherLatency, err))
		} else if d < 0 {
			errs = append(errs, fmt.Errorf("tools.weather_latency must not be negative, got %s", d))
		}
	}

	return errors.Join(errs...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
