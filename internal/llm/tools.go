package llm

import (
	"encoding/json"
	"fmt"
)

// ToolDef defines a tool that an LLM can call during completion.
// Tools allow LLMs to interact with external systems and retrieve information.
type ToolDef struct {
	// Name is the unique identifier for this tool
	Name string `json:"name"`

	// Description explains what the tool does and when to use it
	Description string `json:"description"`

	// Parameters defines the JSON schema for the tool's input parameters
	Parameters map[string]any `json:"parameters"`
}

// Validate checks if the tool definition is valid
func (t ToolDef) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tool name is required")
	}

	if t.Description == "" {
		return fmt.Errorf("tool description is required")
	}

	return nil
}

// NewToolDef creates a new tool definition with the given name, description, and parameters
func NewToolDef(name, description string, params map[string]any) ToolDef {
	return ToolDef{
		Name:        name,
		Description: description,
		Parameters:  params,
	}
}

// ObjectSchema builds a JSON schema for an object with the given required
// string properties. Convenience for the common single-argument tool shape.
func ObjectSchema(props map[string]string, required ...string) map[string]any {
	properties := make(map[string]any, len(props))
	for name, description := range props {
		properties[name] = map[string]any{
			"type":        "string",
			"description": description,
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// ToolCall represents a tool call made by the LLM during completion.
// The LLM specifies which tool to call and what arguments to provide.
type ToolCall struct {
	// ID is a unique identifier for this tool call
	ID string `json:"id"`

	// Type indicates the type of tool call (typically "function")
	Type string `json:"type"`

	// Name is the name of the tool to call
	Name string `json:"name"`

	// Arguments contains the JSON-encoded arguments for the tool
	Arguments string `json:"arguments"`
}

// ParseArguments deserializes the tool call arguments into the provided type.
func (t ToolCall) ParseArguments(v any) error {
	if t.Arguments == "" {
		return fmt.Errorf("tool call arguments are empty")
	}

	if err := json.Unmarshal([]byte(t.Arguments), v); err != nil {
		return fmt.Errorf("failed to parse tool call arguments: %w", err)
	}

	return nil
}
