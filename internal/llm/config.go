package llm

// ProviderConfig contains configuration for a single LLM provider.
// BaseURL allows any OpenAI-compatible endpoint, including a local
// Ollama server's /v1 API.
type ProviderConfig struct {
	Provider     string  `mapstructure:"provider" yaml:"provider" validate:"required,oneof=openai ollama mock"`
	APIKey       string  `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL      string  `mapstructure:"base_url" yaml:"base_url,omitempty" validate:"omitempty,url"`
	DefaultModel string  `mapstructure:"model" yaml:"model" validate:"required"`
	Temperature  float64 `mapstructure:"temperature" yaml:"temperature" validate:"gte=0,lte=1"`
	MaxTokens    int     `mapstructure:"max_tokens" yaml:"max_tokens" validate:"gte=0"`
}

// DefaultProviderConfig returns the configuration the original deployment
// uses: a local Ollama server speaking the OpenAI API.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Provider:     "openai",
		APIKey:       "ollama",
		BaseURL:      "http://localhost:11434/v1",
		DefaultModel: "qwen3:4b",
		Temperature:  0.0,
	}
}
