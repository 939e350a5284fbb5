package providers

import (
	"fmt"

	"github.com/JustinLoye/network-agents/internal/llm"
	"github.com/JustinLoye/network-agents/internal/types"
)

// New creates a provider from configuration. Supported providers:
// "openai" (any OpenAI-compatible endpoint, including Ollama's /v1),
// "ollama" (native Ollama API), and "mock" (tests).
func New(cfg llm.ProviderConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "ollama":
		return NewOllamaProvider(cfg)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, types.NewError(llm.ErrProviderNotFound,
			fmt.Sprintf("unknown provider %q", cfg.Provider))
	}
}
