package schema

// Mode controls how relationship triples are matched against a label set
// during projection.
type Mode string

const (
	// ModeAnd keeps a triple only when both endpoints are in the label set.
	// Trades recall for prompt compactness.
	ModeAnd Mode = "and"

	// ModeOr keeps a triple when either endpoint is in the label set.
	ModeOr Mode = "or"
)

// Project returns a new schema restricted to the relationships matching the
// label set under the given mode. Node and relationship properties are
// restricted to the labels and types reachable from the surviving triples:
// a requested label with no surviving relationship is dropped.
func (s *Schema) Project(labels []string, mode Mode) *Schema {
	wanted := make(map[string]bool, len(labels))
	for _, l := range labels {
		wanted[l] = true
	}

	var triples []Triple
	for _, t := range s.triples {
		var keep bool
		switch mode {
		case ModeOr:
			keep = wanted[t.Source] || wanted[t.Target]
		default:
			keep = wanted[t.Source] && wanted[t.Target]
		}
		if keep {
			triples = append(triples, t)
		}
	}

	survivingLabels := make(map[string]bool)
	survivingTypes := make(map[string]bool)
	for _, t := range triples {
		survivingLabels[t.Source] = true
		survivingLabels[t.Target] = true
		survivingTypes[t.Relationship] = true
	}

	nodeProps := make(map[string][]string)
	for label := range survivingLabels {
		if props, ok := s.nodeProps[label]; ok {
			nodeProps[label] = props
		}
	}

	relProps := make(map[string][]string)
	for relType := range survivingTypes {
		if props, ok := s.relProps[relType]; ok {
			relProps[relType] = props
		}
	}

	return &Schema{
		nodeProps: nodeProps,
		relProps:  relProps,
		triples:   triples,
	}
}
