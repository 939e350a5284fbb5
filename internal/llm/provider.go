package llm

import (
	"context"
)

// Provider defines the interface that all LLM providers must implement.
// It provides a unified abstraction for interacting with different LLM services
// (OpenAI-compatible endpoints, local Ollama models, etc.).
type Provider interface {
	// Name returns the provider name (e.g., "openai", "ollama", "mock")
	Name() string

	// Complete sends a completion request and returns the full response.
	// This is a blocking call that waits for the entire response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// CompleteWithTools sends a completion request with tool definitions.
	// The LLM may choose to call one or more tools in its response.
	CompleteWithTools(ctx context.Context, req CompletionRequest, tools []ToolDef) (*CompletionResponse, error)
}
