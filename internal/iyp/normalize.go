package iyp

import (
	"encoding/json"
	"fmt"

	"github.com/JustinLoye/network-agents/internal/schema"
)

// formatResponse flattens the Query API's tabular payload into records.
// Each cell is either a scalar, a {properties: {...}} wrapper around a node
// or relationship, or a list of such values; wrappers are unwrapped to
// their property bag, lists element by element.
func formatResponse(data rawData) ([]Record, error) {
	records := make([]Record, 0, len(data.Values))

	for _, row := range data.Values {
		if len(row) > len(data.Fields) {
			return nil, fmt.Errorf("row has %d cells for %d fields", len(row), len(data.Fields))
		}

		record := make(Record, len(row))
		for i, raw := range row {
			value, err := normalizeCell(raw)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", data.Fields[i], err)
			}
			record[data.Fields[i]] = value
		}
		records = append(records, record)
	}

	return records, nil
}

// normalizeCell decodes one cell and unwraps node/relationship payloads.
func normalizeCell(raw json.RawMessage) (any, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return unwrap(value), nil
}

func unwrap(value any) any {
	switch v := value.(type) {
	case map[string]any:
		if props, ok := v["properties"].(map[string]any); ok {
			return props
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = unwrap(elem)
		}
		return out
	default:
		return value
	}
}

// stripProvenance removes the reference_* metadata keys from nested
// property bags in place. Top-level scalar columns are untouched.
func stripProvenance(records []Record) {
	for _, record := range records {
		for _, value := range record {
			stripValue(value)
		}
	}
}

func stripValue(value any) {
	switch v := value.(type) {
	case map[string]any:
		for _, field := range schema.ProvenanceProperties {
			delete(v, field)
		}
	case []any:
		for _, elem := range v {
			stripValue(elem)
		}
	}
}
