package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"toolbridge/internal/tools"
	"toolbridge/internal/value"
)

var (
	callParams string
	callID     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered tools",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var describeCmd = &cobra.Command{
	Use:   "describe [tool]",
	Short: "Show a tool's name and description",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

var callCmd = &cobra.Command{
	Use:   "call [tool]",
	Short: "Execute a single tool call",
	Long: `Executes one call and prints the result as JSON. The exit status is
non-zero when the result carries an error.

Example:
  toolbridge call calculator --params '{"operation":"power","operands":[2,3]}'`,
	Args: cobra.ExactArgs(1),
	RunE: runCall,
}

var batchCmd = &cobra.Command{
	Use:   "batch [file|-]",
	Short: "Execute a JSON array of calls concurrently",
	Long: `Reads a JSON array of {"id","name","parameters"} objects from a file, or
from stdin when the argument is "-" or omitted, executes them concurrently
and prints the results in input order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	descs := registry.List()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d tools registered", len(descs))))
	printDescriptors(out, descs)
	return nil
}

func runDescribe(cmd *cobra.Command, args []string) error {
	desc, ok := registry.Describe(args[0])
	if !ok {
		return tools.NotFound(args[0])
	}
	return printJSON(cmd.OutOrStdout(), desc)
}

func runCall(cmd *cobra.Command, args []string) error {
	params, err := value.ParseObject([]byte(callParams))
	if err != nil {
		return fmt.Errorf("--params must be a JSON object: %w", err)
	}

	call := tools.NewToolCall(args[0], params)
	if callID != "" {
		call = tools.NewToolCallWithID(callID, args[0], params)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	res := registry.Execute(ctx, call)
	if err := printJSON(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if !res.IsSuccess() {
		return fmt.Errorf("call %s failed", res.Call.ID)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	calls, err := tools.ParseToolCalls(data)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	results := registry.ExecuteAll(ctx, calls)

	failed := 0
	for _, res := range results {
		if !res.IsSuccess() {
			failed++
		}
	}
	logger.Debug("batch finished", zap.Int("calls", len(calls)), zap.Int("failed", failed))

	return printJSON(cmd.OutOrStdout(), results)
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return data, nil
}
