package providers

import (
	"context"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/JustinLoye/network-agents/internal/llm"
)

// OllamaProvider implements llm.Provider for local Ollama models using the
// native Ollama API rather than the OpenAI compatibility layer.
type OllamaProvider struct {
	client *ollama.LLM
	config llm.ProviderConfig
}

// NewOllamaProvider creates a new Ollama provider
func NewOllamaProvider(cfg llm.ProviderConfig) (*OllamaProvider, error) {
	opts := []ollama.Option{}

	if cfg.DefaultModel != "" {
		opts = append(opts, ollama.WithModel(cfg.DefaultModel))
	}

	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, llm.TranslateError("ollama", err)
	}

	return &OllamaProvider{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Complete sends a completion request
func (p *OllamaProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.applyDefaults(&req)
	messages := toLangchainMessages(req.Messages)
	callOpts := buildCallOptions(req)

	resp, err := p.client.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return nil, llm.TranslateError("ollama", err)
	}

	return fromLangchainResponse(resp, req.Model), nil
}

// CompleteWithTools sends a completion request with tool definitions
func (p *OllamaProvider) CompleteWithTools(ctx context.Context, req llm.CompletionRequest, tools []llm.ToolDef) (*llm.CompletionResponse, error) {
	p.applyDefaults(&req)
	messages := toLangchainMessages(req.Messages)
	callOpts := buildCallOptionsWithTools(req, tools)

	resp, err := p.client.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return nil, llm.TranslateError("ollama", err)
	}

	return fromLangchainResponse(resp, req.Model), nil
}

func (p *OllamaProvider) applyDefaults(req *llm.CompletionRequest) {
	if req.Model == "" {
		req.Model = p.config.DefaultModel
	}
	if req.Temperature == 0 && p.config.Temperature > 0 {
		req.Temperature = p.config.Temperature
	}
	if req.MaxTokens == 0 && p.config.MaxTokens > 0 {
		req.MaxTokens = p.config.MaxTokens
	}
}
