package gemini

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

func TestConvertMessagesRoleMapping(t *testing.T) {
	msgs := []llm.Message{
		llm.NewUserMessage("question"),
		llm.NewAssistantMessage("answer"),
	}

	contents := convertMessages(msgs)
	require.Len(t, contents, 2)

	assert.EqualValues(t, genai.RoleUser, contents[0].Role)
	assert.EqualValues(t, genai.RoleModel, contents[1].Role)

	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "question", contents[0].Parts[0].Text)
	assert.Equal(t, "answer", contents[1].Parts[0].Text)
}

func TestConvertToolsBuildsDeclarations(t *testing.T) {
	infos := []llm.ToolInfo{{
		Name:        "calculator",
		Description: "Performs basic arithmetic",
		Parameters: map[string]any{
			"operation": map[string]any{"type": "string"},
			"a":         map[string]any{"type": "number"},
		},
		Required: []string{"operation", "a"},
	}}

	tools := convertTools(infos)
	require.Len(t, tools, 1)
	require.Len(t, tools[0].FunctionDeclarations, 1)

	fd := tools[0].FunctionDeclarations[0]
	assert.Equal(t, "calculator", fd.Name)
	assert.Equal(t, "Performs basic arithmetic", fd.Description)
	require.NotNil(t, fd.Parameters)
	assert.Contains(t, fd.Parameters.Properties, "operation")
	assert.Contains(t, fd.Parameters.Properties, "a")
	assert.Equal(t, []string{"operation", "a"}, fd.Parameters.Required)
}

func TestConvertToolsEmpty(t *testing.T) {
	assert.Nil(t, convertTools(nil))
	assert.Nil(t, convertTools([]llm.ToolInfo{}))
}

func TestNormalizeStopReason(t *testing.T) {
	assert.Equal(t, llm.StopReasonLength, normalizeStopReason(genai.FinishReasonMaxTokens))
	assert.Equal(t, llm.StopReasonStop, normalizeStopReason(genai.FinishReasonStop))
	assert.Equal(t, llm.StopReasonStop, normalizeStopReason(""))
}

func TestGeminiIsTransientError(t *testing.T) {
	client := &GeminiClient{}

	assert.False(t, client.IsTransientError(nil))
	assert.True(t, client.IsTransientError(errors.New("googleapi: Error 503: The model is overloaded")))
	assert.True(t, client.IsTransientError(errors.New("429 RESOURCE_EXHAUSTED: Resource exhausted")))
	assert.True(t, client.IsTransientError(errors.New("500 Internal error encountered")))
	assert.False(t, client.IsTransientError(errors.New("400 INVALID_ARGUMENT: API key not valid")))
}
