package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JustinLoye/network-agents/internal/types"
)

// LLM error codes
const (
	ErrProviderNotFound    types.ErrorCode = "LLM_PROVIDER_NOT_FOUND"
	ErrProviderInitFailed  types.ErrorCode = "LLM_PROVIDER_INIT_FAILED"
	ErrProviderUnauthorized types.ErrorCode = "LLM_PROVIDER_UNAUTHORIZED"
	ErrProviderRateLimited types.ErrorCode = "LLM_PROVIDER_RATE_LIMITED"
	ErrCompletionFailed    types.ErrorCode = "LLM_COMPLETION_FAILED"
	ErrCompletionTimeout   types.ErrorCode = "LLM_COMPLETION_TIMEOUT"
	ErrResponseParseFailed types.ErrorCode = "LLM_RESPONSE_PARSE_FAILED"
)

// NewAuthError creates an authentication error for the given provider.
func NewAuthError(provider string, cause error) error {
	return types.WrapError(ErrProviderUnauthorized,
		fmt.Sprintf("provider %s: missing or invalid credentials", provider), cause)
}

// TranslateError maps provider/transport errors onto the structured error
// taxonomy so callers can branch on error codes instead of string matching.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return types.WrapError(ErrCompletionTimeout,
			fmt.Sprintf("provider %s: completion timed out", provider), err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "invalid api key"):
		return NewAuthError(provider, err)
	case strings.Contains(msg, "429") || strings.Contains(msg, "rate limit"):
		return types.WrapError(ErrProviderRateLimited,
			fmt.Sprintf("provider %s: rate limited", provider), err)
	default:
		return types.WrapError(ErrCompletionFailed,
			fmt.Sprintf("provider %s: completion failed", provider), err)
	}
}
