package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewToolRegistry()
	calc := NewCalculatorTool()

	require.NoError(t, registry.Register(calc))
	assert.Equal(t, 1, registry.Len())

	got, ok := registry.Get("calculator")
	require.True(t, ok)
	assert.Equal(t, calc, got)

	_, ok = registry.Get("missing")
	assert.False(t, ok)
}

func TestRegistryCollision(t *testing.T) {
	registry := NewToolRegistry()
	require.NoError(t, registry.Register(NewCalculatorTool()))

	err := registry.Register(NewCalculatorTool())
	require.Error(t, err)

	var regErr *AlreadyRegisteredError
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, "calculator", regErr.Name)
	assert.Equal(t, "tool calculator already registered", err.Error())

	// The original registration survives the failed attempt.
	assert.Equal(t, 1, registry.Len())
}

func TestRegistryReplace(t *testing.T) {
	registry := NewToolRegistry()
	first := NewCalculatorTool()
	second := NewCalculatorTool()

	require.NoError(t, registry.Register(first))
	registry.Replace(second)

	got, ok := registry.Get("calculator")
	require.True(t, ok)
	assert.Same(t, second, got.(*CalculatorTool))
	assert.Equal(t, 1, registry.Len())
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewToolRegistry()
	require.NoError(t, registry.Register(NewCalculatorTool()))

	registry.Unregister("calculator")
	assert.Equal(t, 0, registry.Len())

	// Unregistering an absent name is a no-op.
	registry.Unregister("calculator")
}

func TestRegistryGetAllSorted(t *testing.T) {
	registry := NewToolRegistry()
	require.NoError(t, registry.Register(NewWebSearchTool()))
	require.NoError(t, registry.Register(NewCalculatorTool()))

	all := registry.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "calculator", all[0].Name())
	assert.Equal(t, "web_search", all[1].Name())
}

func TestRegistryExecute(t *testing.T) {
	registry := NewToolRegistry()
	require.NoError(t, registry.Register(NewCalculatorTool()))

	res, err := registry.Execute(context.Background(), "calculator", map[string]any{
		"operation": "multiply",
		"a":         6,
		"b":         7,
	})
	require.NoError(t, err)
	assert.InDelta(t, 42.0, res.Details["result"], 1e-9)
}

func TestRegistryExecuteUnknownTool(t *testing.T) {
	registry := NewToolRegistry()

	_, err := registry.Execute(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolNotFound))
	assert.Contains(t, err.Error(), "missing")
}

func TestRegistryExecuteRejectsInvalidArgs(t *testing.T) {
	registry := NewToolRegistry()
	require.NoError(t, registry.Register(NewCalculatorTool()))
	require.NoError(t, registry.Register(NewWebSearchTool()))

	t.Run("missing required field", func(t *testing.T) {
		_, err := registry.Execute(context.Background(), "calculator", map[string]any{
			"operation": "add",
			"a":         1,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid arguments for calculator")
	})

	t.Run("out of range max_results", func(t *testing.T) {
		_, err := registry.Execute(context.Background(), "web_search", map[string]any{
			"query":       "q",
			"max_results": 99,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid arguments for web_search")
	})

	t.Run("unexpected extra field", func(t *testing.T) {
		_, err := registry.Execute(context.Background(), "calculator", map[string]any{
			"operation": "add",
			"a":         1,
			"b":         2,
			"verbose":   true,
		})
		require.Error(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := registry.Execute(context.Background(), "web_search", map[string]any{
			"query": 42,
		})
		require.Error(t, err)
	})
}

func TestSchemaShape(t *testing.T) {
	schema := Schema(NewWebSearchTool())

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Contains(t, schema, "properties")
	assert.Equal(t, []string{"query"}, schema["required"])
}

func TestValidateArgsNilArgs(t *testing.T) {
	// nil args must behave like an empty map, failing only on required fields.
	err := ValidateArgs(NewWebSearchTool(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}
