package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"toolbridge/internal/config"
	"toolbridge/internal/tools"
	"toolbridge/internal/tools/builtin"
	"toolbridge/internal/value"
)

var watchConfig bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive line-based tool console",
	Long: `Reads one command per line:

  list                      list registered tools
  describe <tool>           show one tool
  <tool> [json-object]      execute a call
  batch <json-array>        execute calls concurrently
  help                      show this help
  quit                      leave

With --watch, edits to the config file re-apply tool enablement to the live
registry.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

const replHelp = `commands:
  list | describe <tool> | <tool> [json-object] | batch <json-array> | help | quit`

func runREPL(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if watchConfig {
		w, err := config.NewWatcher(configPath, func(c *config.Config) {
			applyToolConfig(registry, c)
			logger.Info("tool set updated from config", zap.Strings("tools", registry.Names()))
		})
		if err != nil {
			return fmt.Errorf("failed to watch config: %w", err)
		}
		if err := w.Start(cmd.Context()); err != nil {
			w.Stop()
			return fmt.Errorf("failed to watch config: %w", err)
		}
		defer w.Stop()
	}

	fmt.Fprintln(out, headerStyle.Render("toolbridge repl"), mutedStyle.Render("(type help for commands)"))

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for {
		fmt.Fprint(out, nameStyle.Render("toolbridge> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		quit, err := evalLine(cmd, strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("error:"), err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// evalLine runs one REPL line and reports whether the session should end.
func evalLine(cmd *cobra.Command, line string) (bool, error) {
	if line == "" {
		return false, nil
	}
	out := cmd.OutOrStdout()

	head, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch head {
	case "quit", "exit":
		return true, nil

	case "help":
		fmt.Fprintln(out, replHelp)
		return false, nil

	case "list":
		printDescriptors(out, registry.List())
		return false, nil

	case "describe":
		if rest == "" {
			return false, fmt.Errorf("usage: describe <tool>")
		}
		desc, ok := registry.Describe(rest)
		if !ok {
			return false, tools.NotFound(rest)
		}
		return false, printJSON(out, desc)

	case "batch":
		calls, err := tools.ParseToolCalls([]byte(rest))
		if err != nil {
			return false, err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()
		for _, res := range registry.ExecuteAll(ctx, calls) {
			printSummary(out, res)
		}
		return false, nil
	}

	if rest == "" {
		rest = "{}"
	}
	params, err := value.ParseObject([]byte(rest))
	if err != nil {
		return false, fmt.Errorf("parameters must be a JSON object: %w", err)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	return false, printJSON(out, registry.Execute(ctx, tools.NewToolCall(head, params)))
}

// applyToolConfig brings reg in line with c: enabled builtins are
// (re)registered with the current settings, disabled ones are removed.
func applyToolConfig(reg *tools.Registry, c *config.Config) {
	for _, h := range builtin.Handlers(builtinOptions(c)) {
		name := h.Descriptor().Name
		if c.IsToolEnabled(name) {
			reg.Register(h)
		} else {
			reg.Unregister(name)
		}
	}
}
