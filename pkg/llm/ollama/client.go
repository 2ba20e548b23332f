package ollama

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/ollama/ollama/api"
	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OllamaClient Ollama API client
type OllamaClient struct {
	client *api.Client
	logger zerolog.Logger
}

// NewOllamaClient creates an Ollama client against the given host URL.
// An empty host falls back to the OLLAMA_HOST environment convention.
func NewOllamaClient(host string, logger zerolog.Logger) (*OllamaClient, error) {
	// Custom Transport to ensure no timeouts are imposed by the client.
	// Local model loads can take minutes on first request.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 0,
	}

	httpClient := &http.Client{
		Transport: &JSONFixingRoundTripper{Proxied: transport},
		Timeout:   0,
	}

	var client *api.Client
	if host != "" {
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host: %w", err)
		}
		client = api.NewClient(u, httpClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, err
		}
	}

	logger.Info().Str("host", host).Msg("Ollama client initialized")

	return &OllamaClient{
		client: client,
		logger: logger,
	}, nil
}

func (o *OllamaClient) Name() string {
	return "ollama"
}

// Generate implements llm.Provider
func (o *OllamaClient) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model:    req.Model.Name,
		Messages: convertMessages(req.Messages),
		Options: map[string]any{
			"temperature": req.Model.Temperature,
			"top_p":       req.Model.TopP,
			"top_k":       req.Model.TopK,
			"num_predict": req.Model.MaxOutputTokens,
		},
		Stream: &stream,
	}

	if tools := convertTools(req.Tools); len(tools) > 0 {
		chatReq.Tools = tools
	}

	out := &llm.Response{Model: req.Model.Name}
	var sb strings.Builder

	// Stream 為 false 時回呼只會收到一次完整回應
	err := o.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)

		for _, tc := range resp.Message.ToolCalls {
			argsB, err := json.Marshal(tc.Function.Arguments)
			if err != nil {
				o.logger.Warn().Err(err).Msg("Failed to marshal tool call arguments")
				argsB = []byte("{}")
			}
			out.ToolCalls = append(out.ToolCalls, llm.ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: string(argsB),
			})
			o.logger.Debug().
				Str("tool", tc.Function.Name).
				RawJSON("args", argsB).
				Msg("🛠️ Tool call proposed")
		}

		if resp.Done {
			out.Usage = &llm.Usage{
				PromptTokens:     resp.PromptEvalCount,
				CompletionTokens: resp.EvalCount,
				TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
				StopReason:       resp.DoneReason,
			}
			if resp.DoneReason == llm.StopReasonLength {
				o.logger.Warn().Str("model", req.Model.Name).Msg("Response truncated due to length")
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama generation failed: %w", err)
	}

	out.Text = sb.String()
	return out, nil
}

// convertMessages converts history to Ollama API format
func convertMessages(messages []llm.Message) []api.Message {
	msgs := make([]api.Message, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, api.Message{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return msgs
}

// convertTools 透過 JSON 繞道轉成 api.Tool，避免 SDK 型別不一致問題
func convertTools(infos []llm.ToolInfo) []api.Tool {
	if len(infos) == 0 {
		return nil
	}

	raw := make([]map[string]any, 0, len(infos))
	for _, info := range infos {
		schema := map[string]any{
			"type":       "object",
			"properties": info.Parameters,
		}
		if len(info.Required) > 0 {
			schema["required"] = info.Required
		}
		raw = append(raw, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        info.Name,
				"description": info.Description,
				"parameters":  schema,
			},
		})
	}

	rawB, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var tools []api.Tool
	if err := json.Unmarshal(rawB, &tools); err != nil {
		return nil
	}
	return tools
}

// IsTransientError implements the llm.Provider interface
func (o *OllamaClient) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()

	// 1. Connection related errors (Connection refused, reset)
	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "connection reset") {
		return true
	}

	// 2. High load
	if strings.Contains(strings.ToLower(errMsg), "overloaded") {
		return true
	}

	return false
}

//----------------------------------------------------------------
// JSONFixingRoundTripper - Interceptor that fixes illegal JSON escapes
//----------------------------------------------------------------

// JSONFixingRoundTripper intercepts response and fixes illegal escapes (e.g., \$)
// that some local models emit inside JSON strings.
type JSONFixingRoundTripper struct {
	Proxied http.RoundTripper
}

func (j *JSONFixingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := j.Proxied.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	// Only filter text-type responses (mainly JSON bodies)
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(resp.Header.Get("Content-Type"), "application/x-ndjson") {
		resp.Body = &jsonFixingReadCloser{body: resp.Body}
	}
	return resp, nil
}

type jsonFixingReadCloser struct {
	body io.ReadCloser
}

var illegalEscapeRegex = regexp.MustCompile(`\\([^\/\\bfnrtu"])`)

func (j *jsonFixingReadCloser) Read(p []byte) (n int, err error) {
	n, err = j.body.Read(p)
	if n > 0 {
		// Preprocess illegal escapes in the buffer
		// e.g., convert \$ to $ to avoid JSON parsing failures
		content := string(p[:n])
		fixed := illegalEscapeRegex.ReplaceAllString(content, "$1")
		if len(fixed) < len(content) {
			// Only single characters are removed, so in-place copy is safe
			copy(p, []byte(fixed))
			n = len(fixed)
		}
	}
	return n, err
}

func (j *jsonFixingReadCloser) Close() error {
	return j.body.Close()
}
