package llm

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/rwxproject/agent-toolkit/pkg/config"
)

// ProviderFactory 定義建立 Provider 的工廠介面
// 各供應商套件在 init() 中自我註冊，執行檔透過 autoload 套件一次引入
type ProviderFactory interface {
	// Create 根據應用設定建立一個 Provider
	Create(cfg *config.AppConfig, logger zerolog.Logger) (Provider, error)
}

// 全域 Provider 註冊表
var providerRegistry = make(map[string]ProviderFactory)

// RegisterProvider 註冊一個 Provider Factory
func RegisterProvider(name string, factory ProviderFactory) {
	providerRegistry[name] = factory
}

// GetProviderFactory 取得指定名稱的 Provider Factory
func GetProviderFactory(name string) (ProviderFactory, bool) {
	f, ok := providerRegistry[name]
	return f, ok
}

// RegisteredProviders 回傳所有已註冊的名稱（排序後），用於錯誤訊息
func RegisteredProviders() []string {
	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
