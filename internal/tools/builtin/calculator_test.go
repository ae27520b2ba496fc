package builtin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbridge/internal/tools"
	"toolbridge/internal/value"
)

func newTestRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	reg := tools.NewRegistry()
	names := RegisterAll(reg, Options{})
	require.Equal(t, []string{CalculatorName, TextName, WeatherName}, names)
	return reg
}

func calcCall(op string, operands ...value.Value) tools.ToolCall {
	return tools.NewToolCall(CalculatorName, value.Object{
		"operation": value.String(op),
		"operands":  value.Array(operands...),
	})
}

func resultNumber(t *testing.T, res tools.ToolResult) float64 {
	t.Helper()
	require.True(t, res.IsSuccess(), "call failed: %s", res.Error)
	field, ok := res.Result.Field("result")
	require.True(t, ok, "result field missing in %s", res.Result)
	n, ok := field.AsNumber()
	require.True(t, ok, "result is not numeric: %s", field)
	return n
}

func TestCalculatorThroughRegistry(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call tools.ToolCall
		want float64
	}{
		{"add three", calcCall("add", value.Integer(1), value.Integer(2), value.Integer(3)), 6},
		{"power", calcCall("power", value.Integer(2), value.Integer(3)), 8},
		{"subtract folds left", calcCall("subtract", value.Integer(10), value.Integer(3), value.Integer(2)), 5},
		{"divide", calcCall("divide", value.Integer(10), value.Integer(4)), 2.5},
		{"multiply", calcCall("multiply", value.Number(1.5), value.Integer(4)), 6},
		{"sqrt", calcCall("sqrt", value.Integer(16)), 4},
		{"single add", calcCall("add", value.Number(-0.5)), -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resultNumber(t, reg.Execute(ctx, tt.call)))
		})
	}
}

func TestCalculatorIntegralResultIsExact(t *testing.T) {
	reg := newTestRegistry(t)

	res := reg.Execute(context.Background(), calcCall("power", value.Integer(2), value.Integer(3)))
	require.True(t, res.IsSuccess(), res.Error)

	field, _ := res.Result.Field("result")
	assert.True(t, field.Equal(value.Integer(8)), "got %s", field)
}

func TestCalculatorFailures(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    tools.ToolCall
		kind    error
		message string
	}{
		{
			name:    "divide by zero",
			call:    calcCall("divide", value.Integer(10), value.Integer(0)),
			kind:    tools.ErrExecutionFailed,
			message: "Execution failed: division by zero",
		},
		{
			name:    "negative sqrt",
			call:    calcCall("sqrt", value.Integer(-4)),
			kind:    tools.ErrExecutionFailed,
			message: "Execution failed: cannot take square root of negative number",
		},
		{
			name:    "power arity",
			call:    calcCall("power", value.Integer(2)),
			kind:    tools.ErrExecutionFailed,
			message: "Execution failed: power requires exactly 2 operand(s), got 1",
		},
		{
			name:    "subtract arity",
			call:    calcCall("subtract", value.Integer(2)),
			kind:    tools.ErrExecutionFailed,
			message: "Execution failed: subtract requires at least 2 operand(s), got 1",
		},
		{
			name:    "empty add",
			call:    calcCall("add"),
			kind:    tools.ErrExecutionFailed,
			message: "Execution failed: add requires at least 1 operand(s), got 0",
		},
		{
			name: "overflow",
			call: calcCall("power", value.Integer(10), value.Integer(400)),
			kind: tools.ErrExecutionFailed,
		},
		{
			name: "unknown operation",
			call: calcCall("modulo", value.Integer(1)),
			kind: tools.ErrInvalidParameters,
		},
		{
			name: "missing operands",
			call: tools.NewToolCall(CalculatorName, value.Object{"operation": value.String("add")}),
			kind: tools.ErrInvalidParameters,
		},
		{
			name: "string operand",
			call: calcCall("add", value.Integer(1), value.String("2")),
			kind: tools.ErrInvalidParameters,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := reg.Execute(ctx, tt.call)
			require.False(t, res.IsSuccess())
			assert.True(t, errors.Is(res.Err(), tt.kind), "error %q is not %v", res.Error, tt.kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, res.Error)
			}
			assert.True(t, res.Result.Equal(value.EmptyObject()))
		})
	}
}

func TestCalculatorDirect(t *testing.T) {
	res, err := NewCalculator().Execute(context.Background(), CalculatorParams{
		Operation: "add",
		Operands:  []float64{0.1, 0.2},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, res.Result, 1e-12)
	assert.Equal(t, []float64{0.1, 0.2}, res.Operands)
}
