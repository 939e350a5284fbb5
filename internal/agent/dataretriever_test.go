package agent

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinLoye/network-agents/internal/examples"
	"github.com/JustinLoye/network-agents/internal/iyp"
	"github.com/JustinLoye/network-agents/internal/llm/providers"
	"github.com/JustinLoye/network-agents/internal/netops"
	"github.com/JustinLoye/network-agents/internal/pipeline"
	"github.com/JustinLoye/network-agents/internal/schema"
	"github.com/JustinLoye/network-agents/internal/vocab"
)

// staticExecutor returns the same records for every query.
type staticExecutor struct {
	records []iyp.Record
}

func (s *staticExecutor) Execute(ctx context.Context, query string, opts ...iyp.ExecuteOption) ([]iyp.Record, error) {
	return s.records, nil
}

func (s *staticExecutor) ExecuteMany(ctx context.Context, queries []string, opts ...iyp.ExecuteOption) ([][]iyp.Record, error) {
	out := make([][]iyp.Record, len(queries))
	for i := range queries {
		out[i] = s.records
	}
	return out, nil
}

func TestDataRetrieverAsksIYP(t *testing.T) {
	// One provider serves both the retriever loop and the pipeline stages;
	// responses are consumed in call order
	provider := providers.NewMockProvider().
		EnqueueToolCall("iyp_ask", `{"prompt": "Find the IXPs' names where the AS with asn 2497 is present."}`).
		EnqueueText("['AS', 'IXP']").
		EnqueueText("MATCH (:AS {asn: 2497})-[:MEMBER_OF]->(ixp:IXP) RETURN DISTINCT ixp.name").
		EnqueueText("AS2497 is present at JPIX TOKYO.").
		EnqueueText("AS2497 is present at JPIX TOKYO.")

	s, err := schema.Default()
	require.NoError(t, err)
	bank, err := examples.Default()
	require.NoError(t, err)
	pipe := pipeline.New(provider, s, vocab.Default(), examples.NewSelector(bank, examples.WithSeed(1)),
		&staticExecutor{records: []iyp.Record{{"ixp.name": "JPIX TOKYO"}}})

	retriever := NewDataRetriever(provider, pipe, netops.NewTools(), slog.New(slog.DiscardHandler))
	got, err := retriever.Run(context.Background(), "Find the IXPs' names where the AS with asn 2497 is present.")
	require.NoError(t, err)
	assert.Equal(t, "AS2497 is present at JPIX TOKYO.", got)
}
