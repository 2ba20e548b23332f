package openailm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

// Client is a wrapper around the official OpenAI Go SDK
type Client struct {
	client *openai.Client
	logger zerolog.Logger
}

// NewClient creates a new OpenAI client. A non-empty baseURL points the
// client at an OpenAI-compatible endpoint.
func NewClient(apiKey string, baseURL string, logger zerolog.Logger) (*Client, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)

	return &Client{
		client: &client,
		logger: logger,
	}, nil
}

func (c *Client) Name() string {
	return "openai"
}

// Generate implements llm.Provider using the Responses API.
func (c *Client) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	params := responses.ResponseNewParams{
		Model: req.Model.Name,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: convertMessages(req.Messages),
		},
		Temperature:     openai.Float(req.Model.Temperature),
		TopP:            openai.Float(req.Model.TopP),
		MaxOutputTokens: openai.Int(int64(req.Model.MaxOutputTokens)),
	}
	// top_k is not exposed by the OpenAI API

	if tools := convertTools(req.Tools); len(tools) > 0 {
		params.Tools = tools
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai generation failed: %w", err)
	}

	out := &llm.Response{
		Text:  resp.OutputText(),
		Model: req.Model.Name,
		Usage: &llm.Usage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
			StopReason:       llm.StopReasonStop,
		},
	}

	if resp.IncompleteDetails.Reason == "max_output_tokens" {
		out.Usage.StopReason = llm.StopReasonLength
		c.logger.Warn().Str("model", req.Model.Name).Msg("Response truncated due to max tokens limit")
	}

	for _, item := range resp.Output {
		if item.Type != "function_call" {
			continue
		}
		out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
			ID:        item.CallID,
			Name:      item.Name,
			Arguments: item.Arguments,
		})
		c.logger.Debug().
			Str("tool", item.Name).
			Str("args", item.Arguments).
			Msg("🛠️ Tool call proposed")
	}

	return out, nil
}

// convertMessages converts history to Responses API input items
func convertMessages(messages []llm.Message) []responses.ResponseInputItemUnionParam {
	items := make([]responses.ResponseInputItemUnionParam, 0, len(messages))
	for _, msg := range messages {
		role := responses.EasyInputMessageRoleUser
		if msg.Role == llm.RoleAssistant {
			role = responses.EasyInputMessageRoleAssistant
		}
		items = append(items, responses.ResponseInputItemParamOfMessage(msg.Content, role))
	}
	return items
}

// convertTools converts tool declarations to Responses API function tools
func convertTools(infos []llm.ToolInfo) []responses.ToolUnionParam {
	if len(infos) == 0 {
		return nil
	}

	tools := make([]responses.ToolUnionParam, 0, len(infos))
	for _, info := range infos {
		schema := map[string]any{
			"type":       "object",
			"properties": info.Parameters,
		}
		if len(info.Required) > 0 {
			schema["required"] = info.Required
		}

		tools = append(tools, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        info.Name,
				Description: openai.String(info.Description),
				Parameters:  schema,
			},
		})
	}
	return tools
}

func (c *Client) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	// Transient: network-level issues
	if strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") {
		return true
	}

	// Transient: server-side temporary failures
	if strings.Contains(msg, "429") ||
		strings.Contains(msg, "500 internal") ||
		strings.Contains(msg, "502 bad gateway") ||
		strings.Contains(msg, "503 service unavailable") ||
		strings.Contains(msg, "overloaded") {
		return true
	}

	// Everything else (400 Bad Request, 401 Unauthorized, etc.) is non-transient
	return false
}
