package placeholder

import (
	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/config"
	"github.com/rwxproject/agent-toolkit/pkg/llm"
)

// PlaceholderFactory handles creation of placeholder clients
type PlaceholderFactory struct{}

// Create implements ProviderFactory
func (f *PlaceholderFactory) Create(cfg *config.AppConfig, logger zerolog.Logger) (llm.Provider, error) {
	return NewPlaceholderClient(cfg.Agent.Name), nil
}

func init() {
	llm.RegisterProvider("placeholder", &PlaceholderFactory{})
}
