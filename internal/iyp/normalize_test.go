package iyp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawRow(t *testing.T, cells ...string) []json.RawMessage {
	t.Helper()
	row := make([]json.RawMessage, len(cells))
	for i, cell := range cells {
		row[i] = json.RawMessage(cell)
	}
	return row
}

func TestFormatResponse(t *testing.T) {
	tests := []struct {
		name     string
		data     rawData
		expected []Record
	}{
		{
			name: "node cell unwrapped to properties",
			data: rawData{
				Fields: []string{"ixp"},
				Values: [][]json.RawMessage{
					{json.RawMessage(`{"elementId": "4:abc:1", "labels": ["IXP"], "properties": {"name": "JPIX TOKYO"}}`)},
				},
			},
			expected: []Record{{"ixp": map[string]any{"name": "JPIX TOKYO"}}},
		},
		{
			name: "scalar cells pass through",
			data: rawData{
				Fields: []string{"asn", "cc"},
				Values: [][]json.RawMessage{
					{json.RawMessage(`2497`), json.RawMessage(`"JP"`)},
				},
			},
			expected: []Record{{"asn": float64(2497), "cc": "JP"}},
		},
		{
			name: "plain object without properties key kept as-is",
			data: rawData{
				Fields: []string{"stats"},
				Values: [][]json.RawMessage{
					{json.RawMessage(`{"count": 3}`)},
				},
			},
			expected: []Record{{"stats": map[string]any{"count": float64(3)}}},
		},
		{
			name: "list cell unwrapped element-wise",
			data: rawData{
				Fields: []string{"names"},
				Values: [][]json.RawMessage{
					{json.RawMessage(`[{"properties": {"name": "a"}}, "b", 1]`)},
				},
			},
			expected: []Record{{"names": []any{map[string]any{"name": "a"}, "b", float64(1)}}},
		},
		{
			name:     "empty result",
			data:     rawData{Fields: []string{"x"}},
			expected: []Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatResponse(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatResponseRowWiderThanFields(t *testing.T) {
	_, err := formatResponse(rawData{
		Fields: []string{"a"},
		Values: [][]json.RawMessage{rawRow(t, `1`, `2`)},
	})
	require.Error(t, err)
}

func TestStripProvenance(t *testing.T) {
	records := []Record{
		{
			"as": map[string]any{
				"asn":                 float64(2497),
				"name":                "IIJ",
				"reference_name":      "ripe.as_names",
				"reference_org":       "RIPE NCC",
				"reference_time_fetch": "2024-01-01",
			},
			"rels": []any{
				map[string]any{"reference_url_data": "https://example.org", "af": float64(4)},
			},
			"count": float64(1),
		},
	}

	stripProvenance(records)

	assert.Equal(t, map[string]any{"asn": float64(2497), "name": "IIJ"}, records[0]["as"])
	assert.Equal(t, []any{map[string]any{"af": float64(4)}}, records[0]["rels"])
	assert.Equal(t, float64(1), records[0]["count"])
}
