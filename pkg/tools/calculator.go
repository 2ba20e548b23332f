package tools

import (
	"context"
	"fmt"
	"strconv"
)

// CalculatorTool performs basic arithmetic over two float operands.
// 純函式工具，除了日誌之外沒有任何副作用
type CalculatorTool struct{}

// NewCalculatorTool creates a calculator tool
func NewCalculatorTool() *CalculatorTool {
	return &CalculatorTool{}
}

func (t *CalculatorTool) Name() string {
	return "calculator"
}

func (t *CalculatorTool) Description() string {
	return "Performs basic arithmetic on two numbers. Supported operations: add, subtract, multiply, divide."
}

func (t *CalculatorTool) Parameters() map[string]any {
	return map[string]any{
		"operation": map[string]any{
			"type":        "string",
			"enum":        []string{"add", "subtract", "multiply", "divide"},
			"description": "The arithmetic operation to perform.",
		},
		"a": map[string]any{
			"type":        "number",
			"description": "The first operand.",
		},
		"b": map[string]any{
			"type":        "number",
			"description": "The second operand.",
		},
	}
}

func (t *CalculatorTool) RequiredParameters() []string {
	return []string{"operation", "a", "b"}
}

// Execute dispatches on the operation name. Division by zero and unknown
// operations fail with *DomainError.
func (t *CalculatorTool) Execute(ctx context.Context, args map[string]any) (*ToolResult, error) {
	operation, _ := args["operation"].(string)

	a, okA := toFloat(args["a"])
	b, okB := toFloat(args["b"])
	if !okA || !okB {
		return nil, &DomainError{Tool: t.Name(), Reason: "operands a and b must be numbers"}
	}

	var result float64
	switch operation {
	case "add":
		result = a + b
	case "subtract":
		result = a - b
	case "multiply":
		result = a * b
	case "divide":
		if b == 0 {
			return nil, &DomainError{Tool: t.Name(), Reason: "division by zero is not allowed"}
		}
		result = a / b
	default:
		return nil, &DomainError{
			Tool:   t.Name(),
			Reason: fmt.Sprintf("invalid operation %q (supported: add, subtract, multiply, divide)", operation),
		}
	}

	res := NewTextResult(strconv.FormatFloat(result, 'f', -1, 64))
	res.Details = map[string]any{
		"operation": operation,
		"result":    result,
	}
	return res, nil
}

// toFloat accepts the numeric types an argument map realistically carries:
// float64 from JSON decoding, plus int variants from direct Go callers.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
