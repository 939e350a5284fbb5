// Package netops wraps the local network diagnostic commands the
// network-operator agent exposes as tools. Command output is framed in
// <tool> markers so downstream consumers can tell verbatim tool payloads
// apart from model-generated text.
package netops

import (
	"fmt"
	"regexp"
)

var (
	toolPattern       = regexp.MustCompile(`(?s)<tool>(.*?)</tool>`)
	toolRemovePattern = regexp.MustCompile(`(?s)<tool>.*?</tool>\s*`)
)

// FrameTool wraps a tool payload in <tool> markers.
func FrameTool(payload string) string {
	return fmt.Sprintf("<tool>%s</tool>", payload)
}

// ExtractTool returns every framed payload in content, in order.
func ExtractTool(content string) []string {
	matches := toolPattern.FindAllStringSubmatch(content, -1)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m[1]
	}
	return out
}

// RemoveTool strips framed payloads and their trailing whitespace from
// content.
func RemoveTool(content string) string {
	return toolRemovePattern.ReplaceAllString(content, "")
}
