package llm

import (
	"regexp"
	"strings"
)

// thinkPattern matches a delimited internal-reasoning segment emitted by
// reasoning models (e.g. qwen3), including any trailing whitespace.
var thinkPattern = regexp.MustCompile(`(?s)<think>.*?</think>\s*`)

// thinkExtractPattern captures the content inside <think>...</think> tags.
var thinkExtractPattern = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

// StripThoughts removes <think>...</think> segments from content.
// Any text treated as a final answer or a machine-parseable payload must go
// through this first.
func StripThoughts(content string) string {
	return strings.TrimSpace(thinkPattern.ReplaceAllString(content, ""))
}

// ExtractThoughts returns the concatenated content of all <think>...</think>
// segments, or an empty string if there are none.
func ExtractThoughts(content string) string {
	matches := thinkExtractPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return ""
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m[1])
	}
	return strings.Join(parts, "\n")
}
