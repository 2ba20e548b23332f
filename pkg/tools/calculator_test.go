package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorOperations(t *testing.T) {
	calc := NewCalculatorTool()

	tests := []struct {
		name      string
		operation string
		a, b      float64
		want      float64
	}{
		{"add", "add", 2, 3, 5},
		{"subtract", "subtract", 10, 4, 6},
		{"multiply", "multiply", 3, 7, 21},
		{"divide", "divide", 10, 4, 2.5},
		{"divide negative", "divide", -9, 3, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Execute(context.Background(), map[string]any{
				"operation": tt.operation,
				"a":         tt.a,
				"b":         tt.b,
			})
			require.NoError(t, err)

			assert.InDelta(t, tt.want, res.Details["result"], 1e-9)
			assert.Equal(t, tt.operation, res.Details["operation"])
			assert.NotEmpty(t, res.Text())
		})
	}
}

func TestCalculatorDivisionByZero(t *testing.T) {
	calc := NewCalculatorTool()

	res, err := calc.Execute(context.Background(), map[string]any{
		"operation": "divide",
		"a":         1.0,
		"b":         0.0,
	})
	require.Error(t, err)
	assert.Nil(t, res)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Reason, "division by zero")
}

func TestCalculatorInvalidOperation(t *testing.T) {
	calc := NewCalculatorTool()

	_, err := calc.Execute(context.Background(), map[string]any{
		"operation": "modulo",
		"a":         1.0,
		"b":         2.0,
	})
	require.Error(t, err)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, err.Error(), "invalid operation")
	// The error names the allowed set.
	assert.Contains(t, err.Error(), "add, subtract, multiply, divide")
}

func TestCalculatorNonNumericOperands(t *testing.T) {
	calc := NewCalculatorTool()

	_, err := calc.Execute(context.Background(), map[string]any{
		"operation": "add",
		"a":         "one",
		"b":         2.0,
	})
	require.Error(t, err)

	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))
}

func TestCalculatorAcceptsIntegerOperands(t *testing.T) {
	calc := NewCalculatorTool()

	res, err := calc.Execute(context.Background(), map[string]any{
		"operation": "add",
		"a":         2,
		"b":         3,
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.Details["result"], 1e-9)
	assert.Equal(t, "5", res.Text())
}

func TestCalculatorDeclaration(t *testing.T) {
	calc := NewCalculatorTool()

	assert.Equal(t, "calculator", calc.Name())
	assert.NotEmpty(t, calc.Description())
	assert.ElementsMatch(t, []string{"operation", "a", "b"}, calc.RequiredParameters())

	params := calc.Parameters()
	assert.Contains(t, params, "operation")
	assert.Contains(t, params, "a")
	assert.Contains(t, params, "b")
}
