package examples

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinLoye/network-agents/internal/types"
)

func TestQueryLabels(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "simple match",
			query:    "MATCH (:AS {asn: 2497})-[:MEMBER_OF]->(ixp:IXP) RETURN DISTINCT ixp.name",
			expected: []string{"AS", "IXP"},
		},
		{
			name:     "unlabeled node ignored",
			query:    "MATCH (gdns:Prefix {prefix:'8.8.8.0/24'})--(neighbor) RETURN neighbor",
			expected: []string{"Prefix"},
		},
		{
			name:     "no node patterns",
			query:    "RETURN 1",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QueryLabels(tt.query))
		})
	}
}

func testBank() *Bank {
	return NewBank([]Example{
		{Prompt: "p0", Query: "MATCH (:AS)-[:MEMBER_OF]->(:IXP) RETURN 1", Difficulty: HardTechnical},
		{Prompt: "p1", Query: "MATCH (:AS)-[:COUNTRY]->(:Country) RETURN 1", Difficulty: EasyTechnical},
		{Prompt: "p2", Query: "MATCH (:Prefix)--(:Tag) RETURN 1", Difficulty: EasyGeneral},
		{Prompt: "p3", Query: "MATCH (:DomainName)-[:RANK]->(:Ranking) RETURN 1", Difficulty: MediumGeneral},
		{Prompt: "p4", Query: "MATCH (:AS)-[:MEMBER_OF]->(:IXP)-[:COUNTRY]->(:Country) RETURN 1", Difficulty: MediumTechnical},
	})
}

func TestSelectExactCountNoDuplicates(t *testing.T) {
	selector := NewSelector(testBank(), WithSeed(1))

	for topK := 1; topK <= 5; topK++ {
		got, err := selector.Select([]string{"AS", "IXP"}, topK)
		require.NoError(t, err)
		assert.Len(t, got, topK)

		seen := map[string]bool{}
		for _, sel := range got {
			assert.False(t, seen[sel.Prompt], "duplicate example %s", sel.Prompt)
			seen[sel.Prompt] = true
		}
	}
}

func TestSelectRankingByScore(t *testing.T) {
	selector := NewSelector(testBank(), WithSeed(1))

	// p4 scores 3 (AS, IXP, Country), p0 scores 2, p1 scores 2 but easier
	got, err := selector.Select([]string{"AS", "IXP", "Country"}, 3)
	require.NoError(t, err)

	assert.Equal(t, "p4", got[0].Prompt)
	// Ties broken by difficulty: p1 (EasyTechnical) before p0 (HardTechnical)
	assert.Equal(t, "p1", got[1].Prompt)
	assert.Equal(t, "p0", got[2].Prompt)
}

func TestSelectScoreBeatsDifficulty(t *testing.T) {
	selector := NewSelector(testBank(), WithSeed(1))

	// p4 is MediumTechnical but scores 3; easier lower-scored rows come after
	got, err := selector.Select([]string{"AS", "IXP", "Country"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "p4", got[0].Prompt)
}

func TestSelectRandomBackfill(t *testing.T) {
	selector := NewSelector(testBank(), WithSeed(42))

	// Only p2 matches Prefix/Tag; the other two picks are random backfill
	got, err := selector.Select([]string{"Prefix", "Tag"}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "p2", got[0].Prompt)

	seen := map[string]bool{}
	for _, sel := range got {
		seen[sel.Prompt] = true
	}
	assert.Len(t, seen, 3)
}

func TestSelectBackfillSeedable(t *testing.T) {
	a, err := NewSelector(testBank(), WithSeed(7)).Select(nil, 5)
	require.NoError(t, err)
	b, err := NewSelector(testBank(), WithSeed(7)).Select(nil, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSelectInsufficientPool(t *testing.T) {
	selector := NewSelector(testBank(), WithSeed(1))

	_, err := selector.Select([]string{"AS"}, 6)
	require.Error(t, err)
	assert.Equal(t, types.EXAMPLES_INSUFFICIENT, types.CodeOf(err))
}

func TestSelectEscapesBraces(t *testing.T) {
	bank := NewBank([]Example{
		{Prompt: "p", Query: "MATCH (:AS {asn: 2497}) RETURN 1", Difficulty: EasyTechnical},
	})
	got, err := NewSelector(bank, WithSeed(1)).Select([]string{"AS"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "MATCH (:AS {{asn: 2497}}) RETURN 1", got[0].Query)
	assert.NotContains(t, strings.ReplaceAll(got[0].Query, "{{", ""), "{")
}

func TestSelectConcurrentCalls(t *testing.T) {
	selector := NewSelector(testBank(), WithSeed(3))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := selector.Select([]string{"AS", "IXP"}, 4)
			assert.NoError(t, err)
			assert.Len(t, got, 4)
			// Relevant rows always lead regardless of concurrent callers:
			// p0 and p4 both score 2, p4 is easier so it ranks first
			assert.Equal(t, "p4", got[0].Prompt)
		}()
	}
	wg.Wait()
}

func TestDefaultDataset(t *testing.T) {
	bank, err := Default()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bank.Len(), 5)

	// The canonical AS/IXP membership example is present
	var found bool
	for _, ex := range bank.Examples() {
		if strings.Contains(ex.Query, "MEMBER_OF") && strings.Contains(ex.Query, "asn: 2497") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLoadCSVMissingColumn(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("Prompt,Query\nfoo,bar\n"))
	require.Error(t, err)
	assert.Equal(t, types.EXAMPLES_LOAD_FAILED, types.CodeOf(err))
}
