package schema

import (
	"sort"
	"strings"
)

// RenderOptions controls schema serialization.
type RenderOptions struct {
	// IncludeProvenance keeps provenance relationship properties in the
	// output. Off by default: they add prompt noise.
	IncludeProvenance bool
}

// Render serializes the schema into the three-section text shown to the
// query-synthesis model. Output is grouped and sorted so identical schemas
// always render identically (stable prompts cache and test well).
func (s *Schema) Render() string {
	return s.RenderWith(RenderOptions{})
}

// RenderWith is Render with explicit options.
func (s *Schema) RenderWith(opts RenderOptions) string {
	var b strings.Builder

	b.WriteString("Node properties are the following:\n")
	writeTable(&b, "labels", "properties", s.nodeProps, nil)

	b.WriteString("\nRelationship properties are the following:\n")
	var drop []string
	if !opts.IncludeProvenance {
		drop = ProvenanceProperties
	}
	writeTable(&b, "type", "properties", s.relProps, drop)

	b.WriteString("\nRelationship point from source to target nodes:\n")
	s.writeTriples(&b)

	return b.String()
}

// writeTable emits a two-column markdown table of key -> joined values,
// sorted by key, omitting dropped values.
func writeTable(b *strings.Builder, keyHeader, valHeader string, m map[string][]string, drop []string) {
	dropped := make(map[string]bool, len(drop))
	for _, d := range drop {
		dropped[d] = true
	}

	b.WriteString("| " + keyHeader + " | " + valHeader + " |\n")
	b.WriteString("|---|---|\n")

	keys := sortedKeys(m)
	for _, key := range keys {
		kept := make([]string, 0, len(m[key]))
		for _, v := range m[key] {
			if !dropped[v] {
				kept = append(kept, v)
			}
		}
		b.WriteString("| " + key + " | " + strings.Join(kept, ",") + " |\n")
	}
}

// writeTriples emits triples grouped by (source, relationship) with targets
// joined, sorted on all three columns.
func (s *Schema) writeTriples(b *strings.Builder) {
	type group struct {
		source, relationship string
	}

	targets := make(map[group][]string)
	var groups []group
	for _, t := range s.triples {
		g := group{t.Source, t.Relationship}
		if _, seen := targets[g]; !seen {
			groups = append(groups, g)
		}
		targets[g] = append(targets[g], t.Target)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].source != groups[j].source {
			return groups[i].source < groups[j].source
		}
		return groups[i].relationship < groups[j].relationship
	})

	b.WriteString("| source | relationship | target |\n")
	b.WriteString("|---|---|---|\n")
	for _, g := range groups {
		ts := targets[g]
		sort.Strings(ts)
		b.WriteString("| " + g.source + " | " + g.relationship + " | " + strings.Join(ts, ",") + " |\n")
	}
}
