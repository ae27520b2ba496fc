// Package logging provides config-driven categorized logging for toolbridge,
// backed by zap. Every category gets a named child of one root logger.
// Until Initialize is called (or when a category is switched off) loggers are
// no-ops, so library code can log unconditionally.
package logging

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, shutdown
	CategoryConfig   Category = "config"   // Config loading and hot reload
	CategoryRegistry Category = "registry" // Registration and dispatch
	CategoryTools    Category = "tools"    // Tool execution
	CategoryCLI      Category = "cli"      // Command line and REPL
)

// Settings mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports.
type Settings struct {
	Level      string          // debug, info, warn, error
	Format     string          // json, console
	File       string          // empty = stderr
	DebugMode  bool            // forces debug level
	Categories map[string]bool // per-category toggles, missing = enabled
}

var (
	mu       sync.RWMutex
	root     = zap.NewNop()
	settings Settings
)

// Initialize builds the root logger from s and replaces any previous one.
func Initialize(s Settings) error {
	level := zapcore.InfoLevel
	if s.Level != "" {
		parsed, err := zapcore.ParseLevel(s.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", s.Level, err)
		}
		level = parsed
	}
	if s.DebugMode {
		level = zapcore.DebugLevel
	}

	var cfg zap.Config
	switch s.Format {
	case "", "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	case "json":
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	default:
		return fmt.Errorf("invalid log format %q", s.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	if s.File != "" {
		cfg.OutputPaths = []string{s.File}
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	mu.Lock()
	old := root
	root = logger
	settings = s
	mu.Unlock()

	_ = old.Sync()
	Get(CategoryBoot).Debug("logging initialized",
		zap.String("level", level.String()),
		zap.String("format", cfg.Encoding))
	return nil
}

// Replace installs l as the root logger and returns a function restoring the
// previous one. Intended for tests and embedding hosts.
func Replace(l *zap.Logger) func() {
	mu.Lock()
	prevRoot, prevSettings := root, settings
	root = l
	settings = Settings{}
	mu.Unlock()

	return func() {
		mu.Lock()
		root, settings = prevRoot, prevSettings
		mu.Unlock()
	}
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()

	if settings.Categories == nil {
		return true
	}
	enabled, exists := settings.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns the logger for the given category.
// Returns a no-op logger if the category is disabled.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}
	mu.RLock()
	defer mu.RUnlock()
	return root.Named(string(category))
}

// Sync flushes the root logger.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sync()
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...any) {
	Get(CategoryBoot).Sugar().Infof(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...any) {
	Get(CategoryBoot).Sugar().Debugf(format, args...)
}

// Config logs to the config category
func Config(format string, args ...any) {
	Get(CategoryConfig).Sugar().Infof(format, args...)
}

// ConfigWarn logs a warning to the config category
func ConfigWarn(format string, args ...any) {
	Get(CategoryConfig).Sugar().Warnf(format, args...)
}

// Tools logs to the tools category
func Tools(format string, args ...any) {
	Get(CategoryTools).Sugar().Infof(format, args...)
}

// ToolsDebug logs debug to the tools category
func ToolsDebug(format string, args ...any) {
	Get(CategoryTools).Sugar().Debugf(format, args...)
}

// ToolsWarn logs a warning to the tools category
func ToolsWarn(format string, args ...any) {
	Get(CategoryTools).Sugar().Warnf(format, args...)
}

// Timer measures an operation and logs its duration on Stop.
type Timer struct {
	logger    *zap.Logger
	operation string
	start     time.Time
}

// StartTimer starts timing operation in category.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{logger: Get(category), operation: operation, start: time.Now()}
}

// Stop logs the elapsed time at debug level and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug(t.operation, zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs at warn level when the operation exceeded threshold.
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		t.logger.Warn("slow operation",
			zap.String("operation", t.operation),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", threshold))
		return elapsed
	}
	t.logger.Debug(t.operation, zap.Duration("elapsed", elapsed))
	return elapsed
}
