package anthropiclm

import (
	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/config"
	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

// AnthropicFactory handles creation of Anthropic clients
type AnthropicFactory struct{}

// Create implements ProviderFactory
func (f *AnthropicFactory) Create(cfg *config.AppConfig, logger zerolog.Logger) (llm.Provider, error) {
	return NewClient(cfg.APIKey, logger)
}

func init() {
	llm.RegisterProvider("anthropic", &AnthropicFactory{})
}
