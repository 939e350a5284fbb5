package iyp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/sync/errgroup"

	"github.com/JustinLoye/network-agents/internal/types"
)

// BoltConfig configures a direct driver connection, for local IYP dumps or
// deployments where the HTTP Query API is not exposed.
type BoltConfig struct {
	URI      string        `mapstructure:"uri" yaml:"uri" validate:"required"`
	Username string        `mapstructure:"username" yaml:"username"`
	Password string        `mapstructure:"password" yaml:"password"`
	Database string        `mapstructure:"database" yaml:"database"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// BoltExecutor runs queries over the Neo4j Bolt protocol. It implements
// Executor with the same record normalization as the HTTP client.
type BoltExecutor struct {
	driver   neo4j.DriverWithContext
	database string
	timeout  time.Duration
}

// NewBoltExecutor connects to a Neo4j instance and verifies connectivity.
func NewBoltExecutor(ctx context.Context, cfg BoltConfig) (*BoltExecutor, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, types.WrapError(types.QUERY_EXECUTION_FAILED, "cannot create driver", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, types.WrapError(types.QUERY_EXECUTION_FAILED,
			fmt.Sprintf("cannot reach %s", cfg.URI), err)
	}

	return &BoltExecutor{
		driver:   driver,
		database: cfg.Database,
		timeout:  cfg.Timeout,
	}, nil
}

// Close releases the driver and its connection pool.
func (b *BoltExecutor) Close(ctx context.Context) error {
	return b.driver.Close(ctx)
}

// Execute runs one read query and returns normalized records.
func (b *BoltExecutor) Execute(ctx context.Context, query string, opts ...ExecuteOption) ([]Record, error) {
	var options executeOptions
	for _, opt := range opts {
		opt(&options)
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	session := b.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: b.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		cursor, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}
		rows, err := cursor.Collect(ctx)
		if err != nil {
			return nil, err
		}
		return convertBoltRecords(rows), nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, types.WrapError(types.QUERY_TIMEOUT,
				fmt.Sprintf("query exceeded %s ceiling", b.timeout), err).WithQueryText(query)
		}
		return nil, types.WrapError(types.QUERY_EXECUTION_FAILED, "query failed", err).WithQueryText(query)
	}

	records := result.([]Record)
	if !options.keepProvenance {
		stripProvenance(records)
	}
	return records, nil
}

// ExecuteMany runs queries concurrently over the shared connection pool,
// returning result sets in input order.
func (b *BoltExecutor) ExecuteMany(ctx context.Context, queries []string, opts ...ExecuteOption) ([][]Record, error) {
	results := make([][]Record, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		g.Go(func() error {
			records, err := b.Execute(ctx, query, opts...)
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

// convertBoltRecords maps driver records onto the same shape the HTTP
// client produces: nodes and relationships become their property bags.
func convertBoltRecords(rows []*neo4j.Record) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record := make(Record, len(row.Keys))
		for i, key := range row.Keys {
			record[key] = convertBoltValue(row.Values[i])
		}
		records = append(records, record)
	}
	return records
}

func convertBoltValue(value any) any {
	switch v := value.(type) {
	case neo4j.Node:
		return v.Props
	case neo4j.Relationship:
		return v.Props
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = convertBoltValue(elem)
		}
		return out
	default:
		return value
	}
}
