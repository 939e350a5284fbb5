package iyp

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/JustinLoye/network-agents/internal/types"
)

// Cache is a persistent response store keyed by request fingerprint.
// sqlite gives it concurrent-access safety across sessions sharing one
// process; entries never expire unless a TTL is configured.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// OpenCache opens (creating if needed) a sqlite-backed cache at path.
// ttl of zero means entries never expire.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, types.WrapError(types.CACHE_OPEN_FAILED, "cannot open cache store", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS query_cache (
		fingerprint TEXT PRIMARY KEY,
		response    BLOB NOT NULL,
		created_at  INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, types.WrapError(types.CACHE_OPEN_FAILED, "cannot initialize cache store", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Fingerprint derives the cache key for a (query, parameters) pair.
func Fingerprint(query string, params map[string]any) string {
	h := sha256.New()
	h.Write([]byte(query))
	h.Write([]byte{0})
	if len(params) > 0 {
		// Params marshal deterministically: encoding/json sorts map keys
		encoded, _ := json.Marshal(params)
		h.Write(encoded)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached response for fingerprint, if present and fresh.
func (c *Cache) Get(fingerprint string) ([]byte, bool, error) {
	var response []byte
	var createdAt int64
	err := c.db.QueryRow(
		`SELECT response, created_at FROM query_cache WHERE fingerprint = ?`,
		fingerprint,
	).Scan(&response, &createdAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, types.WrapError(types.CACHE_QUERY_FAILED, "cache lookup failed", err)
	}

	if c.ttl > 0 && time.Since(time.Unix(createdAt, 0)) > c.ttl {
		return nil, false, nil
	}
	return response, true, nil
}

// Put stores a response under fingerprint, replacing any previous entry.
func (c *Cache) Put(fingerprint string, response []byte) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO query_cache (fingerprint, response, created_at) VALUES (?, ?, ?)`,
		fingerprint, response, time.Now().Unix(),
	)
	if err != nil {
		return types.WrapError(types.CACHE_QUERY_FAILED, "cache write failed", err)
	}
	return nil
}
