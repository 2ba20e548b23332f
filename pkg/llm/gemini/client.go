package gemini

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GeminiClient Google Gemini API client
type GeminiClient struct {
	client *genai.Client
	logger zerolog.Logger
}

// NewGeminiClient creates a Gemini client with the given API key.
func NewGeminiClient(ctx context.Context, apiKey string, logger zerolog.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		logger: logger,
	}, nil
}

func (g *GeminiClient) Name() string {
	return "gemini"
}

// Generate implements llm.Provider
func (g *GeminiClient) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	contents := convertMessages(req.Messages)

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Model.Temperature)),
		TopP:            genai.Ptr(float32(req.Model.TopP)),
		TopK:            genai.Ptr(float32(req.Model.TopK)),
		MaxOutputTokens: int32(req.Model.MaxOutputTokens),
	}
	if tools := convertTools(req.Tools); len(tools) > 0 {
		cfg.Tools = tools
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model.Name, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}
	candidate := resp.Candidates[0]

	out := &llm.Response{
		Model: req.Model.Name,
		Usage: &llm.Usage{StopReason: normalizeStopReason(candidate.FinishReason)},
	}
	if resp.UsageMetadata != nil {
		u := resp.UsageMetadata
		out.Usage.PromptTokens = int(u.PromptTokenCount)
		out.Usage.CompletionTokens = int(u.CandidatesTokenCount)
		out.Usage.TotalTokens = int(u.TotalTokenCount)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		// 推理內容不進入回覆本文
		if part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}

		if part.FunctionCall != nil {
			argsB, _ := json.Marshal(part.FunctionCall.Args)
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				Name:      part.FunctionCall.Name,
				Arguments: string(argsB),
			})
			g.logger.Debug().
				Str("tool", part.FunctionCall.Name).
				RawJSON("args", argsB).
				Msg("🛠️ Tool call proposed")
		}
	}
	out.Text = sb.String()

	if out.Usage.StopReason == llm.StopReasonLength {
		g.logger.Warn().Str("model", req.Model.Name).Msg("Response truncated due to max tokens limit")
	}

	return out, nil
}

// convertMessages 將通用訊息轉為 GenAI 格式，Gemini 將助理角色稱為 "model"
func convertMessages(messages []llm.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := genai.RoleUser
		if msg.Role == llm.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, genai.Role(role)))
	}
	return contents
}

// convertTools 將工具宣告轉為 GenAI 的 FunctionDeclaration
// Schema 轉換走 JSON 繞道，避免手工對映巢狀欄位
func convertTools(infos []llm.ToolInfo) []*genai.Tool {
	if len(infos) == 0 {
		return nil
	}

	var fds []*genai.FunctionDeclaration
	for _, info := range infos {
		fd := &genai.FunctionDeclaration{
			Name:        info.Name,
			Description: info.Description,
		}

		if len(info.Parameters) > 0 {
			schemaMap := map[string]any{
				"type":       "object",
				"properties": info.Parameters,
			}
			if len(info.Required) > 0 {
				schemaMap["required"] = info.Required
			}
			schemaB, _ := json.Marshal(schemaMap)
			var schema genai.Schema
			if err := json.Unmarshal(schemaB, &schema); err == nil {
				fd.Parameters = &schema
			}
		}

		fds = append(fds, fd)
	}

	return []*genai.Tool{{FunctionDeclarations: fds}}
}

// normalizeStopReason maps Gemini finish reasons to the shared constants.
func normalizeStopReason(reason genai.FinishReason) string {
	if reason == genai.FinishReasonMaxTokens {
		return llm.StopReasonLength
	}
	return llm.StopReasonStop
}

// IsTransientError implements the llm.Provider interface
func (g *GeminiClient) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()

	// 1. Google API common 503 Service Unavailable / Overloaded
	if strings.Contains(errMsg, "503") || strings.Contains(strings.ToLower(errMsg), "overloaded") {
		return true
	}

	// 2. 429 Too Many Requests (Rate Limit)
	if strings.Contains(errMsg, "429") || strings.Contains(strings.ToLower(errMsg), "resource exhausted") {
		return true
	}

	// 3. 500 Internal Error (Occasional Google Gemini crashes)
	if strings.Contains(errMsg, "500") || strings.Contains(strings.ToLower(errMsg), "internal error") {
		return true
	}

	return false
}
