package anthropiclm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

// Client is a wrapper around the official Anthropic Go SDK
type Client struct {
	client anthropic.Client
	logger zerolog.Logger
}

// NewClient creates a new Anthropic client
func NewClient(apiKey string, logger zerolog.Logger) (*Client, error) {
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		logger: logger,
	}, nil
}

func (c *Client) Name() string {
	return "anthropic"
}

// Generate implements llm.Provider
func (c *Client) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model.Name),
		Messages:    convertMessages(req.Messages),
		MaxTokens:   int64(req.Model.MaxOutputTokens),
		Temperature: anthropic.Float(req.Model.Temperature),
		TopP:        anthropic.Float(req.Model.TopP),
		TopK:        anthropic.Int(int64(req.Model.TopK)),
	}

	if tools := convertTools(req.Tools); len(tools) > 0 {
		params.Tools = tools
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic generation failed: %w", err)
	}

	out := &llm.Response{
		Model: req.Model.Name,
		Usage: &llm.Usage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
			StopReason:       normalizeStopReason(string(resp.StopReason)),
		},
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			sb.WriteString(b.Text)
		case anthropic.ToolUseBlock:
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				ID:        b.ID,
				Name:      b.Name,
				Arguments: b.JSON.Input.Raw(),
			})
			c.logger.Debug().Str("tool", b.Name).Msg("🛠️ Tool call proposed")
		}
	}
	out.Text = sb.String()

	if out.Usage.StopReason == llm.StopReasonLength {
		c.logger.Warn().Str("model", req.Model.Name).Msg("Response truncated due to max tokens limit")
	}

	return out, nil
}

// convertMessages converts history to Anthropic message params
func convertMessages(messages []llm.Message) []anthropic.MessageParam {
	msgs := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == llm.RoleAssistant {
			msgs = append(msgs, anthropic.MessageParam{
				Role: anthropic.MessageParamRoleAssistant,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(msg.Content),
				},
			})
			continue
		}
		msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
	}
	return msgs
}

// convertTools converts tool declarations to Anthropic tool params
func convertTools(infos []llm.ToolInfo) []anthropic.ToolUnionParam {
	if len(infos) == 0 {
		return nil
	}

	tools := make([]anthropic.ToolUnionParam, 0, len(infos))
	for _, info := range infos {
		toolParam := anthropic.ToolParam{
			Name:        info.Name,
			Description: anthropic.String(info.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: info.Parameters,
			},
		}
		if len(info.Required) > 0 {
			toolParam.InputSchema.Required = info.Required
		}
		tools = append(tools, anthropic.ToolUnionParam{OfTool: &toolParam})
	}
	return tools
}

// normalizeStopReason maps Anthropic stop reasons to the shared constants.
func normalizeStopReason(reason string) string {
	if reason == "max_tokens" {
		return llm.StopReasonLength
	}
	return llm.StopReasonStop
}

// IsTransientError implements the llm.Provider interface
func (c *Client) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	// Transient: network-level issues
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "context deadline exceeded") {
		return true
	}

	// Transient: rate limits and server-side failures (529 is the
	// dedicated overloaded status)
	if strings.Contains(msg, "429") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "503") ||
		strings.Contains(msg, "529") ||
		strings.Contains(msg, "overloaded") {
		return true
	}

	return false
}
