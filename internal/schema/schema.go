// Package schema models the IYP property-graph schema and its projection to
// a subset of node labels. The full schema is far too large to put in a
// prompt: projecting it down to the labels extracted from the user question
// keeps the query-synthesis context small and relevant.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/JustinLoye/network-agents/internal/types"
)

//go:embed iyp-schema.json
var defaultSchemaDoc []byte

// ProvenanceProperties are relationship metadata describing where IYP got
// the data. They are elided from rendered schemas and stripped from query
// results because they add noise without helping query synthesis.
var ProvenanceProperties = []string{
	"reference_name",
	"reference_org",
	"reference_time_fetch",
	"reference_url_data",
	"reference_time_modification",
	"reference_url_info",
}

// Triple is one allowed source-relationship-target combination.
type Triple struct {
	Source       string `json:"source"`
	Relationship string `json:"relationship"`
	Target       string `json:"target"`
}

// Schema is an immutable property-graph schema: node labels with their
// properties, relationship types with their properties, and the allowed
// triples. Build one at startup with Load or Default; Project derives
// restricted views without touching the original.
type Schema struct {
	nodeProps map[string][]string
	relProps  map[string][]string
	triples   []Triple
}

// document is the on-disk schema shape: three named sections.
type document struct {
	NodeProperties         map[string][]string            `json:"node_properties"`
	RelationshipProperties map[string][]string            `json:"relationship_properties"`
	Relationships          map[string]map[string][]string `json:"schema"`
}

// Default returns the schema built from the embedded IYP schema document.
func Default() (*Schema, error) {
	return Parse(defaultSchemaDoc)
}

// LoadFile reads a schema document from a JSON file.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.WrapError(types.SCHEMA_PARSE_FAILED,
			fmt.Sprintf("cannot open schema document %s", path), err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a schema document from r.
func Load(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.WrapError(types.SCHEMA_PARSE_FAILED, "cannot read schema document", err)
	}
	return Parse(data)
}

// Parse builds a Schema from a JSON document with three required sections:
// node_properties (label -> property list), relationship_properties
// (type -> property list) and schema (source -> type -> target list).
// Fails if a section is missing or a triple references an undeclared
// relationship type.
func Parse(data []byte) (*Schema, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, types.WrapError(types.SCHEMA_PARSE_FAILED, "invalid schema document", err)
	}

	if doc.NodeProperties == nil {
		return nil, types.NewError(types.SCHEMA_SECTION_MISSING, "missing node_properties section")
	}
	if doc.RelationshipProperties == nil {
		return nil, types.NewError(types.SCHEMA_SECTION_MISSING, "missing relationship_properties section")
	}
	if doc.Relationships == nil {
		return nil, types.NewError(types.SCHEMA_SECTION_MISSING, "missing schema section")
	}

	s := &Schema{
		nodeProps: doc.NodeProperties,
		relProps:  doc.RelationshipProperties,
	}

	for _, source := range sortedKeys(doc.Relationships) {
		byType := doc.Relationships[source]
		for _, relType := range sortedKeys(byType) {
			if _, ok := s.relProps[relType]; !ok {
				return nil, types.NewError(types.SCHEMA_PARSE_FAILED,
					fmt.Sprintf("relationship triple %s-%s references undeclared relationship type", source, relType))
			}
			for _, target := range byType[relType] {
				s.triples = append(s.triples, Triple{
					Source:       source,
					Relationship: relType,
					Target:       target,
				})
			}
		}
	}

	return s, nil
}

// Labels returns all node labels in the schema, sorted.
func (s *Schema) Labels() []string {
	return sortedKeys(s.nodeProps)
}

// NodeProperties returns the property names for a node label.
func (s *Schema) NodeProperties(label string) []string {
	return s.nodeProps[label]
}

// RelationshipProperties returns the property names for a relationship type.
func (s *Schema) RelationshipProperties(relType string) []string {
	return s.relProps[relType]
}

// Triples returns all source-relationship-target triples.
func (s *Schema) Triples() []Triple {
	out := make([]Triple, len(s.triples))
	copy(out, s.triples)
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
