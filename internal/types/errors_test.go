package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAgentErrorFormat(t *testing.T) {
	err := NewError(SCHEMA_PARSE_FAILED, "missing relationships section")
	assert.Equal(t, "[SCHEMA_PARSE_FAILED] missing relationships section", err.Error())

	wrapped := WrapError(QUERY_EXECUTION_FAILED, "query rejected", errors.New("status 500"))
	assert.Equal(t, "[QUERY_EXECUTION_FAILED] query rejected: status 500", wrapped.Error())
}

func TestAgentErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(QUERY_EXECUTION_FAILED, "post failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestAgentErrorIsByCode(t *testing.T) {
	err := fmt.Errorf("stage failed: %w", NewError(QUERY_TIMEOUT, "deadline exceeded"))

	assert.ErrorIs(t, err, NewError(QUERY_TIMEOUT, "other message"))
	assert.NotErrorIs(t, err, NewError(QUERY_EXECUTION_FAILED, "other code"))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewRetryableError(QUERY_TIMEOUT, "timeout")))
	assert.False(t, IsRetryable(NewError(SCHEMA_PARSE_FAILED, "bad schema")))
	assert.False(t, IsRetryable(errors.New("plain error")))
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewError(EXAMPLES_INSUFFICIENT, "pool too small"))
	assert.Equal(t, EXAMPLES_INSUFFICIENT, CodeOf(err))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
}
