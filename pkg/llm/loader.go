package llm

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/config"
)

// NewFromConfig 根據設定建立 Provider
// 設定中的 Provider 名稱會透過註冊表解析；啟用 Debug 時外層再包一層
// DebugProvider 記錄每次請求
func NewFromConfig(cfg *config.AppConfig, logger zerolog.Logger) (Provider, error) {
	factory, ok := GetProviderFactory(cfg.Provider)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (registered: %s)",
			cfg.Provider, strings.Join(RegisteredProviders(), ", "))
	}

	provider, err := factory.Create(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", cfg.Provider, err)
	}

	logger.Info().
		Str("provider", provider.Name()).
		Str("model", cfg.Model.Name).
		Msg("✅ Model provider initialized")

	if cfg.Agent.Debug {
		provider = NewDebugProvider(provider, logger)
	}

	return provider, nil
}
