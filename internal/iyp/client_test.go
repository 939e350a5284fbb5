package iyp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinLoye/network-agents/internal/types"
)

const sampleBody = `{"data": {"fields": ["ixp"], "values": [
	[{"properties": {"name": "JPIX TOKYO", "reference_org": "PeeringDB"}}],
	[{"properties": {"name": "DE-CIX Frankfurt", "reference_org": "PeeringDB"}}]
]}}`

func newTestClient(t *testing.T, handler http.Handler, mutate func(*Config)) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := Config{BaseURL: server.URL, Timeout: 5 * time.Second}
	if mutate != nil {
		mutate(&cfg)
	}
	client, err := NewClient(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestExecuteNormalizesAndStripsProvenance(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, sampleBody)
	}), nil)

	records, err := client.Execute(context.Background(), "MATCH (ixp:IXP) RETURN ixp")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, map[string]any{"name": "JPIX TOKYO"}, records[0]["ixp"])
	assert.NotContains(t, records[1]["ixp"], "reference_org")
}

func TestExecuteWithProvenance(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, sampleBody)
	}), nil)

	records, err := client.Execute(context.Background(), "MATCH (ixp:IXP) RETURN ixp", WithProvenance())
	require.NoError(t, err)
	assert.Contains(t, records[0]["ixp"], "reference_org")
}

func TestExecuteAPIError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Neo.ClientError.Statement.SyntaxError", http.StatusBadRequest)
	}), nil)

	query := "MATCH (n RETURN n"
	_, err := client.Execute(context.Background(), query)
	require.Error(t, err)
	assert.Equal(t, types.QUERY_EXECUTION_FAILED, types.CodeOf(err))
	assert.Equal(t, query, types.QueryTextOf(err))
	assert.Contains(t, err.Error(), "SyntaxError")
}

func TestExecuteTimeout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}), func(cfg *Config) {
		cfg.Timeout = 50 * time.Millisecond
	})

	_, err := client.Execute(context.Background(), "MATCH (n) RETURN count(n)")
	require.Error(t, err)
	assert.Equal(t, types.QUERY_TIMEOUT, types.CodeOf(err))
}

func TestExecuteManyPreservesOrder(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		require.NoError(t, readJSON(r, &req))
		w.WriteHeader(http.StatusAccepted)
		// Echo the statement back so ordering is observable
		fmt.Fprintf(w, `{"data": {"fields": ["q"], "values": [[%q]]}}`, req.Statement)
	}), nil)

	queries := []string{"RETURN 0", "RETURN 1", "RETURN 2", "RETURN 3"}
	results, err := client.ExecuteMany(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, results, len(queries))
	for i, records := range results {
		assert.Equal(t, queries[i], records[0]["q"])
	}
}

func TestExecuteManyFirstFailureFailsBatch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		require.NoError(t, readJSON(r, &req))
		if req.Statement == "boom" {
			http.Error(w, "bad statement", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{"data": {"fields": ["x"], "values": [[1]]}}`)
	}), nil)

	_, err := client.ExecuteMany(context.Background(), []string{"RETURN 1", "boom"})
	require.Error(t, err)
	assert.Equal(t, types.QUERY_EXECUTION_FAILED, types.CodeOf(err))
}

func TestExecuteCacheHitSkipsNetwork(t *testing.T) {
	var hits atomic.Int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, sampleBody)
	}), func(cfg *Config) {
		cfg.CachePath = filepath.Join(t.TempDir(), "iyp-cache.db")
	})

	query := "MATCH (ixp:IXP) RETURN ixp"
	first, err := client.Execute(context.Background(), query)
	require.NoError(t, err)
	second, err := client.Execute(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load())
	assert.Equal(t, first, second)

	// Bypassing the cache goes back to the network
	_, err = client.Execute(context.Background(), query, WithoutCache())
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestExecuteErrorResponsesNotCached(t *testing.T) {
	var hits atomic.Int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "transient", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, sampleBody)
	}), func(cfg *Config) {
		cfg.CachePath = filepath.Join(t.TempDir(), "iyp-cache.db")
	})

	query := "MATCH (ixp:IXP) RETURN ixp"
	_, err := client.Execute(context.Background(), query)
	require.Error(t, err)

	records, err := client.Execute(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
