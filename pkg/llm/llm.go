package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/config"
)

// Usage 定義通用的用量統計結構
type Usage struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	StopReason       string `json:"stop_reason,omitempty"`
}

// ToolInfo 描述一個可讓模型參考的工具：名稱、說明與參數 Schema
// Provider 只負責轉換成各家 SDK 的宣告格式，不負責執行
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Required    []string       `json:"required,omitempty"`
}

// Request 是一次生成呼叫的完整輸入
type Request struct {
	Messages []Message          // 對話歷史（依序為 user/assistant 配對）
	Model    config.ModelConfig // 生成參數
	Tools    []ToolInfo         // 可用工具宣告（可為空）
}

// Response 是一次生成呼叫的結果
type Response struct {
	Text      string     // 助理回覆文字
	Model     string     // 實際使用的模型名稱
	ToolCalls []ToolCall // 模型提出的工具調用（不透明紀錄）
	Usage     *Usage     // 用量統計（Provider 不一定提供）
}

// Provider 通用模型供應商介面
type Provider interface {
	// Name 回傳供應商名稱，例如 "gemini"
	Name() string

	// Generate 同步產生一則回覆
	// req.Messages 為對話歷史（使用 llm.Message 結構）
	Generate(ctx context.Context, req *Request) (*Response, error)

	// IsTransientError 判斷是否為暫時性錯誤 (如 503, Rate Limit)
	IsTransientError(err error) bool
}

// FallbackProvider 支援多個 Provider 分級嘗試
type FallbackProvider struct {
	Providers  []Provider
	MaxRetries int
	RetryDelay time.Duration
	Logger     zerolog.Logger
}

func (f *FallbackProvider) Name() string {
	return "fallback"
}

func (f *FallbackProvider) Generate(ctx context.Context, req *Request) (*Response, error) {
	var lastErr error
	for i, provider := range f.Providers {
		if i > 0 {
			f.Logger.Warn().
				Str("provider", provider.Name()).
				Msgf("⚠️ Previous provider failed. Trying fallback provider #%d...", i+1)
		}

		// 使用配置的重試次數，若為 0 則至少執行 1 次
		maxRetries := f.MaxRetries
		if maxRetries <= 0 {
			maxRetries = 1
		}

		for retry := 1; retry <= maxRetries; retry++ {
			if retry > 1 {
				f.Logger.Info().Msgf("🔄 Retrying provider #%d (attempt %d/%d)...", i+1, retry, maxRetries)
				// 稍微等待一下再重試
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(time.Duration(retry-1) * f.RetryDelay):
				}
			}

			resp, err := provider.Generate(ctx, req)
			if err == nil {
				return resp, nil
			}

			lastErr = err

			if provider.IsTransientError(err) && retry < maxRetries {
				f.Logger.Warn().Err(err).Msgf("❌ Provider #%d failed with transient error. Retrying...", i+1)
				continue
			}

			// 非暫時性錯誤，或者已達最大重試次數
			f.Logger.Error().Err(err).Msgf("❌ Provider #%d failed", i+1)
			break
		}
	}
	return nil, fmt.Errorf("all fallback providers failed, last error: %w", lastErr)
}

// IsTransientError 實作 Provider 介面
// FallbackProvider 的錯誤意味著所有 Child 都失敗了，因此視為非暫時性
func (f *FallbackProvider) IsTransientError(err error) bool {
	return false
}
