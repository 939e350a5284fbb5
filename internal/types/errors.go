package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for network-agents errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Schema error codes
const (
	SCHEMA_PARSE_FAILED    ErrorCode = "SCHEMA_PARSE_FAILED"
	SCHEMA_SECTION_MISSING ErrorCode = "SCHEMA_SECTION_MISSING"
)

// Example bank error codes
const (
	EXAMPLES_LOAD_FAILED  ErrorCode = "EXAMPLES_LOAD_FAILED"
	EXAMPLES_INSUFFICIENT ErrorCode = "EXAMPLES_INSUFFICIENT"
)

// Retrieval pipeline error codes
const (
	ENTITY_EXTRACTION_FAILED ErrorCode = "ENTITY_EXTRACTION_FAILED"
	QUERY_SYNTHESIS_FAILED   ErrorCode = "QUERY_SYNTHESIS_FAILED"
	QUERY_EXECUTION_FAILED   ErrorCode = "QUERY_EXECUTION_FAILED"
	QUERY_TIMEOUT            ErrorCode = "QUERY_TIMEOUT"
	PRESENTATION_FAILED      ErrorCode = "PRESENTATION_FAILED"
)

// Cache error codes
const (
	CACHE_OPEN_FAILED  ErrorCode = "CACHE_OPEN_FAILED"
	CACHE_QUERY_FAILED ErrorCode = "CACHE_QUERY_FAILED"
)

// Agent orchestration error codes
const (
	AGENT_NOT_FOUND     ErrorCode = "AGENT_NOT_FOUND"
	AGENT_STEP_EXCEEDED ErrorCode = "AGENT_STEP_EXCEEDED"
	AGENT_TOOL_FAILED   ErrorCode = "AGENT_TOOL_FAILED"
)

// AgentError represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type AgentError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error

	// QueryText is the offending query, retained for diagnostics on
	// execution failures.
	QueryText string
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *AgentError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *AgentError) Is(target error) bool {
	var agentErr *AgentError
	if errors.As(target, &agentErr) {
		return e.Code == agentErr.Code
	}
	return false
}

// NewError creates a new non-retryable AgentError with the given code and message.
func NewError(code ErrorCode, message string) *AgentError {
	return &AgentError{
		Code:    code,
		Message: message,
	}
}

// NewRetryableError creates a new retryable AgentError with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *AgentError {
	return &AgentError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a new non-retryable AgentError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *AgentError {
	return &AgentError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithQueryText attaches the query that caused the error.
// Returns the error for method chaining.
func (e *AgentError) WithQueryText(query string) *AgentError {
	e.QueryText = query
	return e
}

// QueryTextOf extracts the retained query text from err, if any.
func QueryTextOf(err error) string {
	var agentErr *AgentError
	if errors.As(err, &agentErr) {
		return agentErr.QueryText
	}
	return ""
}

// IsRetryable reports whether err (or any error in its chain) is a retryable AgentError.
func IsRetryable(err error) bool {
	var agentErr *AgentError
	if errors.As(err, &agentErr) {
		return agentErr.Retryable
	}
	return false
}

// CodeOf extracts the error code from err, or returns an empty code if err
// is not an AgentError.
func CodeOf(err error) ErrorCode {
	var agentErr *AgentError
	if errors.As(err, &agentErr) {
		return agentErr.Code
	}
	return ""
}
