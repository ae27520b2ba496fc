package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "toolbridge", cfg.Name)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 30*time.Second, cfg.GetExecutionTimeout())
	assert.Equal(t, time.Duration(0), cfg.GetWeatherLatency())
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Execution, cfg.Execution)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toolbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: bridge-test
logging:
  level: debug
  format: json
execution:
  default_timeout: 5s
  batch_concurrency: 4
tools:
  disabled: [weather]
  weather_latency: 250ms
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bridge-test", cfg.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 5*time.Second, cfg.GetExecutionTimeout())
	assert.Equal(t, 4, cfg.Execution.BatchConcurrency)
	assert.Equal(t, 250*time.Millisecond, cfg.GetWeatherLatency())
	assert.False(t, cfg.IsToolEnabled("weather"))
	assert.True(t, cfg.IsToolEnabled("calculator"))

	// Unset keys keep their defaults.
	assert.Equal(t, DefaultConfig().Version, cfg.Version)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "toolbridge.yaml")

	cfg := DefaultConfig()
	cfg.Execution.BatchConcurrency = 8
	cfg.Tools.Enabled = []string{"calculator", "text"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestIsToolEnabled(t *testing.T) {
	tests := []struct {
		name     string
		tools    ToolsConfig
		tool     string
		expected bool
	}{
		{"empty config enables all", ToolsConfig{}, "weather", true},
		{"allowlist includes", ToolsConfig{Enabled: []string{"weather"}}, "weather", true},
		{"allowlist excludes", ToolsConfig{Enabled: []string{"text"}}, "weather", false},
		{"disabled wins over allowlist", ToolsConfig{Enabled: []string{"weather"}, Disabled: []string{"weather"}}, "weather", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Tools: tt.tools}
			assert.Equal(t, tt.expected, cfg.IsToolEnabled(tt.tool))
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("bad level and format reported together", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logging.Level = "verbose"
		cfg.Logging.Format = "xml"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "invalid log format")
	})

	t.Run("only console and json formats", func(t *testing.T) {
		for _, format := range []string{"console", "json", ""} {
			cfg := DefaultConfig()
			cfg.Logging.Format = format
			assert.NoError(t, cfg.Validate(), format)
		}
		cfg := DefaultConfig()
		cfg.Logging.Format = "text"
		assert.ErrorContains(t, cfg.Validate(), "invalid log format")
	})

	t.Run("bad timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Execution.DefaultTimeout = "soon"
		assert.ErrorContains(t, cfg.Validate(), "default_timeout")

		cfg.Execution.DefaultTimeout = "-1s"
		assert.ErrorContains(t, cfg.Validate(), "must be positive")
	})

	t.Run("negative concurrency", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Execution.BatchConcurrency = -1
		assert.ErrorContains(t, cfg.Validate(), "batch_concurrency")
	})

	t.Run("bad latency", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Tools.WeatherLatency = "fast"
		assert.ErrorContains(t, cfg.Validate(), "weather_latency")
	})
}

func TestGettersFallBack(t *testing.T) {
	cfg := &Config{
		Execution: ExecutionConfig{DefaultTimeout: "garbage"},
		Tools:     ToolsConfig{WeatherLatency: "-5s"},
	}
	assert.Equal(t, 30*time.Second, cfg.GetExecutionTimeout())
	assert.Equal(t, time.Duration(0), cfg.GetWeatherLatency())
}

func TestLoggingSettings(t *testing.T) {
	lc := LoggingConfig{Level: "warn", Format: "json", File: "x.log", DebugMode: true, Categories: map[string]bool{"tools": false}}
	s := lc.Settings()

	assert.Equal(t, "warn", s.Level)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, "x.log", s.File)
	assert.True(t, s.DebugMode)
	assert.Equal(t, map[string]bool{"tools": false}, s.Categories)
}
