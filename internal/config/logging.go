package config

import "toolbridge/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`                // debug, info, warn, error
	Format     string          `yaml:"format"`               // console, json
	File       string          `yaml:"file,omitempty"`       // empty = stderr
	DebugMode  bool            `yaml:"debug_mode"`           // forces debug level
	Categories map[string]bool `yaml:"categories,omitempty"` // per-category toggles
}

// Settings converts c into the logging package's settings.
func (c LoggingConfig) Settings() logging.Settings {
	return logging.Settings{
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		DebugMode:  c.DebugMode,
		Categories: c.Categories,
	}
}
