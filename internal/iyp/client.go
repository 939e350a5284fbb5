// Package iyp executes Cypher queries against the Internet Yellow Pages
// knowledge graph and normalizes the heterogeneous result shape into flat
// records.
package iyp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JustinLoye/network-agents/internal/types"
)

// DefaultBaseURL is the public IYP Neo4j Query API endpoint.
const DefaultBaseURL = "https://iyp.iijlab.net/iyp/db/neo4j/query/v2"

// DefaultTimeout bounds a single query call. Hard analytical queries over
// the whole graph can legitimately run for many minutes.
const DefaultTimeout = 30 * time.Minute

// acceptedStatus is the status the Neo4j Query API returns on success.
const acceptedStatus = http.StatusAccepted

// Record is one normalized result row: column name to scalar, property bag,
// or list of either.
type Record map[string]any

// Executor runs Cypher queries against IYP. Implementations must be safe
// for concurrent use.
type Executor interface {
	// Execute runs one query and returns normalized records.
	Execute(ctx context.Context, query string, opts ...ExecuteOption) ([]Record, error)

	// ExecuteMany runs a batch concurrently, returning result sets in input
	// order. A single query's failure fails the whole batch.
	ExecuteMany(ctx context.Context, queries []string, opts ...ExecuteOption) ([][]Record, error)
}

// ExecuteOption adjusts a single call.
type ExecuteOption func(*executeOptions)

type executeOptions struct {
	noCache        bool
	keepProvenance bool
}

// WithoutCache bypasses the response cache for this call.
func WithoutCache() ExecuteOption {
	return func(o *executeOptions) { o.noCache = true }
}

// WithProvenance keeps provenance reference fields in the returned records.
func WithProvenance() ExecuteOption {
	return func(o *executeOptions) { o.keepProvenance = true }
}

// Config configures the HTTP client.
type Config struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	CachePath string        `mapstructure:"cache_path" yaml:"cache_path"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// DefaultConfig returns the production endpoint with caching disabled.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client executes queries over the Neo4j HTTP Query API.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	cache   *Cache
	logger  *slog.Logger
}

// NewClient creates a client. If cfg.CachePath is set, responses are cached
// in a local sqlite store keyed by request fingerprint.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		http:    &http.Client{},
		logger:  logger,
	}

	if cfg.CachePath != "" {
		cache, err := OpenCache(cfg.CachePath, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}

	return c, nil
}

// Close releases the cache store, if any.
func (c *Client) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// queryRequest is the Neo4j Query API request body.
type queryRequest struct {
	Statement  string         `json:"statement"`
	Parameters map[string]any `json:"parameters"`
}

// queryResponse is the Neo4j Query API response envelope.
type queryResponse struct {
	Data rawData `json:"data"`
}

// rawData is the tabular payload: column names plus rows of heterogeneous
// cell values.
type rawData struct {
	Fields []string            `json:"fields"`
	Values [][]json.RawMessage `json:"values"`
}

// Execute runs one query synchronously and returns normalized records with
// provenance fields stripped unless requested otherwise.
func (c *Client) Execute(ctx context.Context, query string, opts ...ExecuteOption) ([]Record, error) {
	var options executeOptions
	for _, opt := range opts {
		opt(&options)
	}

	body, err := c.fetch(ctx, query, options)
	if err != nil {
		return nil, err
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, types.WrapError(types.QUERY_EXECUTION_FAILED,
			"cannot decode query response", err).WithQueryText(query)
	}

	records, err := formatResponse(resp.Data)
	if err != nil {
		return nil, types.WrapError(types.QUERY_EXECUTION_FAILED,
			"cannot normalize query response", err).WithQueryText(query)
	}

	if !options.keepProvenance {
		stripProvenance(records)
	}
	return records, nil
}

// ExecuteMany runs queries concurrently under the shared client and cache,
// returning result sets in input order. The first failure cancels the rest.
func (c *Client) ExecuteMany(ctx context.Context, queries []string, opts ...ExecuteOption) ([][]Record, error) {
	results := make([][]Record, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		g.Go(func() error {
			records, err := c.Execute(ctx, query, opts...)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// fetch returns the raw response body for a query, via the cache when
// possible.
func (c *Client) fetch(ctx context.Context, query string, options executeOptions) ([]byte, error) {
	payload, err := json.Marshal(queryRequest{
		Statement:  query,
		Parameters: map[string]any{},
	})
	if err != nil {
		return nil, types.WrapError(types.QUERY_EXECUTION_FAILED, "cannot encode query", err)
	}

	useCache := c.cache != nil && !options.noCache
	fingerprint := Fingerprint(query, nil)

	if useCache {
		if cached, ok, err := c.cache.Get(fingerprint); err != nil {
			c.logger.Warn("cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, types.WrapError(types.QUERY_EXECUTION_FAILED, "cannot build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, types.WrapError(types.QUERY_TIMEOUT,
				fmt.Sprintf("query exceeded %s ceiling", c.timeout), err).WithQueryText(query)
		}
		return nil, types.WrapError(types.QUERY_EXECUTION_FAILED, "request failed", err).WithQueryText(query)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, types.WrapError(types.QUERY_TIMEOUT,
				fmt.Sprintf("query exceeded %s ceiling", c.timeout), err).WithQueryText(query)
		}
		return nil, types.WrapError(types.QUERY_EXECUTION_FAILED, "cannot read response", err).WithQueryText(query)
	}

	if resp.StatusCode != acceptedStatus {
		return nil, types.NewError(types.QUERY_EXECUTION_FAILED,
			fmt.Sprintf("API error %d: %s", resp.StatusCode, string(body))).WithQueryText(query)
	}

	if useCache {
		if err := c.cache.Put(fingerprint, body); err != nil {
			c.logger.Warn("cache write failed", "error", err)
		}
	}

	return body, nil
}
