package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"toolbridge/internal/tools"
	"toolbridge/internal/tools/builtin"
	"toolbridge/internal/value"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through successful calls, failures and a concurrent batch",
	Args:  cobra.NoArgs,
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx, cancel := commandContext(cmd)
	defer cancel()

	// A private registry, so the batch section can swap in a slow weather
	// tool without touching the shared one.
	reg := buildRegistry(cfg)

	section(out, "Registered tools")
	printDescriptors(out, reg.List())

	section(out, "Successful calls")
	for _, call := range []tools.ToolCall{
		demoCall("1", builtin.CalculatorName, "operation", value.String("add"), "operands", numbers(1, 2, 3)),
		demoCall("2", builtin.CalculatorName, "operation", value.String("power"), "operands", numbers(2, 3)),
		demoCall("3", builtin.TextName, "operation", value.String("title"), "text", value.String("hello typed tools")),
		demoCall("4", builtin.WeatherName, "location", value.String("Lisbon"), "include_forecast", value.Bool(true), "days", value.Integer(2)),
	} {
		printSummary(out, reg.Execute(ctx, call))
	}

	section(out, "Failures are results, not panics")
	for _, call := range []tools.ToolCall{
		demoCall("5", "translate", "text", value.String("hola")),
		demoCall("6", builtin.CalculatorName, "operation", value.String("add")),
		demoCall("7", builtin.CalculatorName, "operation", value.String("divide"), "operands", numbers(10, 0)),
		demoCall("8", builtin.CalculatorName, "operation", value.String("sqrt"), "operands", numbers(-4)),
	} {
		printSummary(out, reg.Execute(ctx, call))
	}

	section(out, "Concurrent batch keeps input order")
	if reg.Has(builtin.WeatherName) {
		// Same name, so this replaces the registered weather tool.
		tools.RegisterTool[builtin.WeatherParams, builtin.WeatherResult](reg, builtin.NewWeather(150*time.Millisecond))
	}
	batch := []tools.ToolCall{
		demoCall("slow", builtin.WeatherName, "location", value.String("Oslo")),
		demoCall("fast", builtin.CalculatorName, "operation", value.String("multiply"), "operands", numbers(6, 7)),
		demoCall("bad", builtin.TextName, "operation", value.String("shout"), "text", value.String("hi")),
	}
	start := time.Now()
	for _, res := range reg.ExecuteAll(ctx, batch) {
		printSummary(out, res)
	}
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("batch of %d finished in %s", len(batch), time.Since(start).Round(time.Millisecond))))
	return nil
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("== "+title))
}

// demoCall builds a call from alternating key/value arguments.
func demoCall(id, name string, kv ...any) tools.ToolCall {
	params := value.Object{}
	for i := 0; i+1 < len(kv); i += 2 {
		params[kv[i].(string)] = kv[i+1].(value.Value)
	}
	return tools.NewToolCallWithID(id, name, params)
}

func numbers(xs ...float64) value.Value {
	vs := make([]value.Value, len(xs))
	for i, x := range xs {
		vs[i] = value.Number(x)
	}
	return value.Array(vs...)
}
