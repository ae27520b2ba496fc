package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"toolbridge/internal/config"
	"toolbridge/internal/logging"
	"toolbridge/internal/tools"
	"toolbridge/internal/tools/builtin"
)

var (
	// Global flags
	verbose    bool
	configPath string
	timeout    time.Duration

	// Set up by PersistentPreRunE
	cfg      *config.Config
	registry *tools.Registry
	logger   *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "toolbridge",
	Short: "Run typed tools through a dynamic call interface",
	Long: `toolbridge dispatches loosely-typed tool calls (a tool name plus a JSON
parameter object) to statically-typed tool implementations and reports every
outcome, success or failure, as a structured result.

Builtin tools: calculator, text, weather.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			loaded.Logging.Level = "debug"
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if err := logging.Initialize(loaded.Logging.Settings()); err != nil {
			return err
		}

		cfg = loaded
		logger = logging.Get(logging.CategoryCLI)
		registry = buildRegistry(cfg)

		logger.Debug("toolbridge ready",
			zap.String("command", cmd.Name()),
			zap.Strings("tools", registry.Names()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "toolbridge.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-command timeout (default: execution.default_timeout)")

	// Call flags
	callCmd.Flags().StringVarP(&callParams, "params", "p", "{}", "Parameters as a JSON object")
	callCmd.Flags().StringVar(&callID, "id", "", "Call ID (default: generated)")

	// REPL flags
	replCmd.Flags().BoolVar(&watchConfig, "watch", false, "Reload tool settings when the config file changes")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(replCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}

// buildRegistry registers the builtin tools enabled by c.
func buildRegistry(c *config.Config) *tools.Registry {
	reg := tools.NewRegistry(
		tools.WithLogger(logging.Get(logging.CategoryRegistry)),
		tools.WithConcurrencyLimit(c.Execution.BatchConcurrency),
	)
	builtin.RegisterAll(reg, builtinOptions(c))
	return reg
}

func builtinOptions(c *config.Config) builtin.Options {
	return builtin.Options{
		WeatherLatency: c.GetWeatherLatency(),
		Enabled:        c.IsToolEnabled,
	}
}

// commandContext bounds a command by --timeout, falling back to the
// configured default. The registry itself never imposes a deadline.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	d := timeout
	if d <= 0 {
		d = cfg.GetExecutionTimeout()
	}
	return context.WithTimeout(parent, d)
}
