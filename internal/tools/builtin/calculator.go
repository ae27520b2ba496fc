package builtin

import (
	"context"
	"math"

	"toolbridge/internal/tools"
)

// CalculatorName is the registry name of the calculator tool.
const CalculatorName = "calculator"

// CalculatorParams are the decoded parameters of the calculator tool.
type CalculatorParams struct {
	Operation string    `json:"operation"`
	Operands  []float64 `json:"operands"`
}

// CalculatorResult is returned by the calculator tool.
type CalculatorResult struct {
	Operation string    `json:"operation"`
	Operands  []float64 `json:"operands"`
	Result    float64   `json:"result"`
}

// Calculator performs arithmetic. add and multiply accept any number of
// operands, subtract and divide fold left over two or more, power takes
// exactly two and sqrt exactly one.
type Calculator struct{}

var _ tools.Tool[CalculatorParams, CalculatorResult] = (*Calculator)(nil)

// NewCalculator returns the calculator tool.
func NewCalculator() *Calculator { return &Calculator{} }

func (c *Calculator) Name() string { return CalculatorName }

func (c *Calculator) Description() string {
	return "Perform arithmetic: add, subtract, multiply, divide, power or sqrt over a list of operands"
}

func (c *Calculator) Schema() tools.ToolSchema {
	return tools.ToolSchema{
		Required: []string{"operation", "operands"},
		Properties: map[string]tools.Property{
			"operation": {
				Type:        "string",
				Description: "The operation to perform",
				Enum:        []any{"add", "subtract", "multiply", "divide", "power", "sqrt"},
			},
			"operands": {
				Type:        "array",
				Description: "Numbers to operate on",
				Items:       &tools.PropertyItems{Type: "number"},
			},
		},
	}
}

func (c *Calculator) Execute(ctx context.Context, p CalculatorParams) (CalculatorResult, error) {
	result, err := calculate(p.Operation, p.Operands)
	if err != nil {
		return CalculatorResult{}, err
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return CalculatorResult{}, tools.ExecutionFailed("result is not a finite number")
	}
	return CalculatorResult{Operation: p.Operation, Operands: p.Operands, Result: result}, nil
}

func calculate(op string, xs []float64) (float64, error) {
	switch op {
	case "add":
		if err := atLeast(op, xs, 1); err != nil {
			return 0, err
		}
		var sum float64
		for _, x := range xs {
			sum += x
		}
		return sum, nil

	case "multiply":
		if err := atLeast(op, xs, 1); err != nil {
			return 0, err
		}
		product := 1.0
		for _, x := range xs {
			product *= x
		}
		return product, nil

	case "subtract":
		if err := atLeast(op, xs, 2); err != nil {
			return 0, err
		}
		acc := xs[0]
		for _, x := range xs[1:] {
			acc -= x
		}
		return acc, nil

	case "divide":
		if err := atLeast(op, xs, 2); err != nil {
			return 0, err
		}
		acc := xs[0]
		for _, x := range xs[1:] {
			if x == 0 {
				return 0, tools.ExecutionFailed("division by zero")
			}
			acc /= x
		}
		return acc, nil

	case "power":
		if err := exactly(op, xs, 2); err != nil {
			return 0, err
		}
		return math.Pow(xs[0], xs[1]), nil

	case "sqrt":
		if err := exactly(op, xs, 1); err != nil {
			return 0, err
		}
		if xs[0] < 0 {
			return 0, tools.ExecutionFailed("cannot take square root of negative number")
		}
		return math.Sqrt(xs[0]), nil
	}

	// Unreachable through the registry: the schema enum rejects it first.
	return 0, tools.InvalidParametersf("unknown operation %q", op)
}

func atLeast(op string, xs []float64, n int) error {
	if len(xs) < n {
		return tools.ExecutionFailedf("%s requires at least %d operand(s), got %d", op, n, len(xs))
	}
	return nil
}

func exactly(op string, xs []float64, n int) error {
	if len(xs) != n {
		return tools.ExecutionFailedf("%s requires exactly %d operand(s), got %d", op, n, len(xs))
	}
	return nil
}
