// Package vocab holds the closed vocabulary of Internet entity labels the
// extraction stage is allowed to return. The set is fixed and hand-curated;
// the extractor is constrained to it by prompt, and callers validate its
// output against the vocabulary as a defensive check.
package vocab

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed entities.yaml
var entitiesDoc []byte

// Entity pairs a label with its one-sentence description.
type Entity struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
}

// Vocabulary is an ordered, closed set of entity labels with descriptions.
type Vocabulary struct {
	entities []Entity
	index    map[string]int
}

// Default returns the vocabulary built from the embedded entity document.
// The document is part of the binary; a parse failure is a build defect,
// so Default panics rather than returning an error.
func Default() *Vocabulary {
	v, err := Parse(entitiesDoc)
	if err != nil {
		panic("vocab: embedded entity document is invalid: " + err.Error())
	}
	return v
}

// Parse builds a vocabulary from a YAML document with an `entities` list of
// {label, description} pairs.
func Parse(data []byte) (*Vocabulary, error) {
	var doc struct {
		Entities []Entity `yaml:"entities"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(doc.Entities))
	for i, e := range doc.Entities {
		index[e.Label] = i
	}

	return &Vocabulary{entities: doc.Entities, index: index}, nil
}

// AllLabels returns the canonical ordered label list, used to build the
// extraction prompt's closed-set constraint.
func (v *Vocabulary) AllLabels() []string {
	labels := make([]string, len(v.entities))
	for i, e := range v.entities {
		labels[i] = e.Label
	}
	return labels
}

// Contains reports whether label is part of the vocabulary.
func (v *Vocabulary) Contains(label string) bool {
	_, ok := v.index[label]
	return ok
}

// Validate returns the subset of labels outside the vocabulary.
func (v *Vocabulary) Validate(labels []string) (unknown []string) {
	for _, l := range labels {
		if !v.Contains(l) {
			unknown = append(unknown, l)
		}
	}
	return unknown
}

// Describe returns the explanation lines for exactly the requested labels,
// one "- Label: description" line each, preserving the vocabulary's
// canonical ordering. Unknown labels are omitted silently so the filter is
// robust to vocabulary drift.
func (v *Vocabulary) Describe(labels []string) string {
	requested := make(map[string]bool, len(labels))
	for _, l := range labels {
		requested[l] = true
	}

	var lines []string
	for _, e := range v.entities {
		if requested[e.Label] {
			lines = append(lines, "- "+e.Label+": "+e.Description)
		}
	}
	return strings.Join(lines, "\n")
}

// DescribeAll returns the explanation lines for the whole vocabulary.
func (v *Vocabulary) DescribeAll() string {
	return v.Describe(v.AllLabels())
}
