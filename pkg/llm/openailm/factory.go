package openailm

import (
	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/config"
	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

// OpenAIFactory handles creation of OpenAI clients
type OpenAIFactory struct{}

// Create implements ProviderFactory
func (f *OpenAIFactory) Create(cfg *config.AppConfig, logger zerolog.Logger) (llm.Provider, error) {
	return NewClient(cfg.APIKey, "", logger)
}

func init() {
	llm.RegisterProvider("openai", &OpenAIFactory{})
}
