package examples

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/JustinLoye/network-agents/internal/types"
)

// nodePattern matches the contents of Cypher node patterns like (n:AS {...}).
var nodePattern = regexp.MustCompile(`\(([^)]+)\)`)

// labelPattern extracts the label annotation from a node pattern's contents.
var labelPattern = regexp.MustCompile(`:\s*([A-Za-z_][A-Za-z0-9_]*)`)

// QueryLabels parses the schema labels referenced by a Cypher query's node
// patterns. Relationship types inside [...] are not node patterns and are
// ignored.
func QueryLabels(query string) []string {
	var labels []string
	for _, m := range nodePattern.FindAllStringSubmatch(query, -1) {
		if lm := labelPattern.FindStringSubmatch(m[1]); lm != nil {
			labels = append(labels, lm[1])
		}
	}
	return labels
}

// Selected is one example chosen for a synthesis prompt. Query has literal
// braces escaped so it can pass through template substitution untouched.
type Selected struct {
	Prompt string
	Query  string
}

// Selector picks the topK examples most relevant to an entity set,
// backfilling with uniformly random picks when too few score above zero.
// Each call scores an isolated copy of the pool, so concurrent sessions
// never observe each other's scoring state.
type Selector struct {
	bank *Bank

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Selector.
type Option func(*Selector)

// WithSeed fixes the random backfill seed for reproducible tests.
func WithSeed(seed int64) Option {
	return func(s *Selector) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// NewSelector creates a selector over the given bank.
func NewSelector(bank *Bank, opts ...Option) *Selector {
	s := &Selector{
		bank: bank,
		rng:  rand.New(rand.NewSource(rand.Int63())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// scored is an ephemeral per-call scoring row; the bank itself is never
// annotated in place.
type scored struct {
	index int
	score int
}

// Select returns exactly topK examples: those sharing the most labels with
// entities first (descending score, ascending difficulty on ties), then
// uniformly random backfill without replacement from the rest of the pool.
// Fails when the whole pool holds fewer than topK rows.
func (s *Selector) Select(entities []string, topK int) ([]Selected, error) {
	pool := s.bank.examples
	if len(pool) < topK {
		return nil, types.NewError(types.EXAMPLES_INSUFFICIENT,
			fmt.Sprintf("example pool has %d rows, need %d", len(pool), topK))
	}

	entitySet := make(map[string]bool, len(entities))
	for _, e := range entities {
		entitySet[e] = true
	}

	rows := make([]scored, len(pool))
	for i, ex := range pool {
		rows[i] = scored{index: i, score: intersectionSize(entitySet, QueryLabels(ex.Query))}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return pool[rows[i].index].Difficulty < pool[rows[j].index].Difficulty
	})

	picked := make([]int, 0, topK)
	for _, row := range rows {
		if row.score <= 0 || len(picked) == topK {
			break
		}
		picked = append(picked, row.index)
	}

	// Uniform random backfill without replacement over the remaining pool.
	// Repeated calls may return different backfill rows; that exploration
	// over low-relevance examples is intended.
	if missing := topK - len(picked); missing > 0 {
		taken := make(map[int]bool, len(picked))
		for _, idx := range picked {
			taken[idx] = true
		}

		remaining := make([]int, 0, len(pool)-len(picked))
		for i := range pool {
			if !taken[i] {
				remaining = append(remaining, i)
			}
		}

		s.mu.Lock()
		s.rng.Shuffle(len(remaining), func(i, j int) {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		})
		s.mu.Unlock()

		picked = append(picked, remaining[:missing]...)
	}

	out := make([]Selected, 0, topK)
	for _, idx := range picked {
		out = append(out, Selected{
			Prompt: pool[idx].Prompt,
			Query:  escapeBraces(pool[idx].Query),
		})
	}
	return out, nil
}

func intersectionSize(set map[string]bool, labels []string) int {
	seen := make(map[string]bool, len(labels))
	count := 0
	for _, l := range labels {
		if set[l] && !seen[l] {
			seen[l] = true
			count++
		}
	}
	return count
}

// escapeBraces doubles literal braces so queries survive downstream
// template substitution.
func escapeBraces(query string) string {
	query = strings.ReplaceAll(query, "{", "{{")
	return strings.ReplaceAll(query, "}", "}}")
}
