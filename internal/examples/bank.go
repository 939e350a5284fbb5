// Package examples holds the CypherEval bank of hand-verified
// natural-language prompt / Cypher query pairs and the selector that picks
// few-shot exemplars for query synthesis.
package examples

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JustinLoye/network-agents/internal/types"
)

//go:embed cyphereval.csv
var defaultDataset []byte

// Difficulty is an ordered categorical: easier examples are preferred as
// few-shot exemplars when relevance scores tie.
type Difficulty int

const (
	EasyTechnical Difficulty = iota
	EasyGeneral
	MediumTechnical
	MediumGeneral
	HardTechnical
	HardGeneral
	difficultyUnknown
)

var difficultyNames = map[string]Difficulty{
	"Easy technical prompt":   EasyTechnical,
	"Easy general prompt":     EasyGeneral,
	"Medium technical prompt": MediumTechnical,
	"Medium general prompt":   MediumGeneral,
	"Hard technical prompt":   HardTechnical,
	"Hard general prompt":     HardGeneral,
}

// ParseDifficulty maps a dataset difficulty label to its rank. Unknown
// labels sort last so odd rows are deprioritized, not rejected.
func ParseDifficulty(s string) Difficulty {
	if d, ok := difficultyNames[strings.TrimSpace(s)]; ok {
		return d
	}
	return difficultyUnknown
}

// Example is one worked prompt/query pair from the dataset.
type Example struct {
	Prompt     string
	Query      string
	Difficulty Difficulty
}

// Bank is an immutable collection of examples loaded at startup. Selection
// never mutates it; scoring happens on per-call copies.
type Bank struct {
	examples []Example
}

// NewBank creates a bank from a fixed example slice.
func NewBank(examples []Example) *Bank {
	out := make([]Example, len(examples))
	copy(out, examples)
	return &Bank{examples: out}
}

// Default returns the bank built from the embedded CypherEval dataset.
func Default() (*Bank, error) {
	return LoadCSV(bytes.NewReader(defaultDataset))
}

// LoadFile reads a CypherEval CSV dataset from a file.
func LoadFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.WrapError(types.EXAMPLES_LOAD_FAILED,
			fmt.Sprintf("cannot open example dataset %s", path), err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// LoadCSV reads a CypherEval dataset with columns
// "Prompt", "Canonical Solution" and "Difficulty Level".
func LoadCSV(r io.Reader) (*Bank, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, types.WrapError(types.EXAMPLES_LOAD_FAILED, "cannot read dataset header", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Prompt", "Canonical Solution", "Difficulty Level"} {
		if _, ok := cols[required]; !ok {
			return nil, types.NewError(types.EXAMPLES_LOAD_FAILED,
				fmt.Sprintf("dataset missing column %q", required))
		}
	}

	var examples []Example
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, types.WrapError(types.EXAMPLES_LOAD_FAILED, "cannot read dataset row", err)
		}
		if len(record) < len(header) {
			continue
		}
		examples = append(examples, Example{
			Prompt:     record[cols["Prompt"]],
			Query:      record[cols["Canonical Solution"]],
			Difficulty: ParseDifficulty(record[cols["Difficulty Level"]]),
		})
	}

	return &Bank{examples: examples}, nil
}

// Len returns the number of examples in the bank.
func (b *Bank) Len() int {
	return len(b.examples)
}

// Examples returns a copy of the bank's examples.
func (b *Bank) Examples() []Example {
	out := make([]Example, len(b.examples))
	copy(out, b.examples)
	return out
}
