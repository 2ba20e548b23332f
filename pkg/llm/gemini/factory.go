package gemini

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/config"
	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

// GeminiFactory handles creation of Gemini clients
type GeminiFactory struct{}

// Create implements ProviderFactory
func (f *GeminiFactory) Create(cfg *config.AppConfig, logger zerolog.Logger) (llm.Provider, error) {
	return NewGeminiClient(context.Background(), cfg.APIKey, logger)
}

func init() {
	llm.RegisterProvider("gemini", &GeminiFactory{})
}
