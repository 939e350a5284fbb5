package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/JustinLoye/network-agents/internal/llm"
)

// MockProvider implements llm.Provider with scripted responses for tests.
// Responses are returned in FIFO order; requests are recorded for assertions.
type MockProvider struct {
	mu        sync.Mutex
	responses []*llm.CompletionResponse
	requests  []llm.CompletionRequest
	err       error
}

// NewMockProvider creates a mock provider with no scripted responses.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// EnqueueText queues an assistant text response.
func (p *MockProvider) EnqueueText(content string) *MockProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append(p.responses, &llm.CompletionResponse{
		ID:           uuid.New().String(),
		Message:      llm.NewAssistantMessage(content),
		FinishReason: llm.FinishReasonStop,
	})
	return p
}

// EnqueueToolCall queues an assistant response calling the named tool.
func (p *MockProvider) EnqueueToolCall(name, arguments string) *MockProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append(p.responses, &llm.CompletionResponse{
		ID: uuid.New().String(),
		Message: llm.Message{
			Role: llm.RoleAssistant,
			ToolCalls: []llm.ToolCall{{
				ID:        uuid.New().String(),
				Type:      "function",
				Name:      name,
				Arguments: arguments,
			}},
		},
		FinishReason: llm.FinishReasonToolCalls,
	})
	return p
}

// FailWith makes all subsequent calls return err.
func (p *MockProvider) FailWith(err error) *MockProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
	return p
}

// Requests returns a copy of all recorded completion requests.
func (p *MockProvider) Requests() []llm.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]llm.CompletionRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

// Complete returns the next scripted response.
func (p *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return p.next(ctx, req)
}

// CompleteWithTools returns the next scripted response; tool definitions are ignored.
func (p *MockProvider) CompleteWithTools(ctx context.Context, req llm.CompletionRequest, tools []llm.ToolDef) (*llm.CompletionResponse, error) {
	return p.next(ctx, req)
}

func (p *MockProvider) next(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)

	if p.err != nil {
		return nil, p.err
	}

	if len(p.responses) == 0 {
		return nil, fmt.Errorf("mock provider: no scripted response left")
	}

	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp, nil
}
