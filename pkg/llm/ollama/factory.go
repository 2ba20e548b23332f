package ollama

import (
	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/config"
	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

// OllamaFactory handles creation of Ollama clients
type OllamaFactory struct{}

// Create implements ProviderFactory
func (f *OllamaFactory) Create(cfg *config.AppConfig, logger zerolog.Logger) (llm.Provider, error) {
	return NewOllamaClient(cfg.OllamaHost, logger)
}

func init() {
	llm.RegisterProvider("ollama", &OllamaFactory{})
}
