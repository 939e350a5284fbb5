package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// codeBlockPattern matches markdown code blocks with optional language tag.
var codeBlockPattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.+?)\\n```")

// ParseStringList parses an LLM response expected to contain a list of
// strings. It tolerates the common response shapes: a bare JSON array, an
// array inside a markdown code block, or a python-style list with single
// quotes. Thinking segments are stripped before parsing.
func ParseStringList(response string) ([]string, error) {
	text := StripThoughts(response)

	// Prefer the content of a code block when present
	if m := codeBlockPattern.FindStringSubmatch(text); m != nil {
		lang := strings.ToLower(m[1])
		if lang == "" || lang == "json" || lang == "python" {
			text = strings.TrimSpace(m[2])
		}
	}

	// Cut to the outermost brackets
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no list found in response")
	}
	text = text[start : end+1]

	var items []string
	if err := json.Unmarshal([]byte(text), &items); err == nil {
		return items, nil
	}

	// Python-style lists use single quotes; retry with them swapped
	swapped := strings.ReplaceAll(text, "'", `"`)
	if err := json.Unmarshal([]byte(swapped), &items); err != nil {
		return nil, fmt.Errorf("response is not a list of strings: %w", err)
	}

	return items, nil
}
