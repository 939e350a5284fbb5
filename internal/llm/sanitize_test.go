package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripThoughts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no thinking segment",
			input:    "MATCH (n) RETURN n",
			expected: "MATCH (n) RETURN n",
		},
		{
			name:     "leading thinking segment",
			input:    "<think>the user wants IXPs</think>\nMATCH (n) RETURN n",
			expected: "MATCH (n) RETURN n",
		},
		{
			name:     "multiline thinking segment",
			input:    "<think>line one\nline two</think>\n[\"AS\", \"IXP\"]",
			expected: "[\"AS\", \"IXP\"]",
		},
		{
			name:     "multiple segments",
			input:    "<think>a</think>first<think>b</think> second",
			expected: "first second",
		},
		{
			name:     "only thinking",
			input:    "<think>nothing else</think>",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripThoughts(tt.input))
		})
	}
}

func TestExtractThoughts(t *testing.T) {
	assert.Equal(t, "reasoning here",
		ExtractThoughts("<think>reasoning here</think>answer"))
	assert.Equal(t, "a\nb",
		ExtractThoughts("<think>a</think>x<think>b</think>"))
	assert.Equal(t, "", ExtractThoughts("no tags at all"))
}

func TestResponseText(t *testing.T) {
	resp := &CompletionResponse{
		Message: NewAssistantMessage("<think>hmm</think>\nthe answer"),
	}
	assert.Equal(t, "the answer", resp.Text())
}
