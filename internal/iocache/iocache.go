// Package iocache caches retrieved bucket counts so repeated runs over an
// unchanged repository history skip the git traversal.
package iocache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/tempo/internal/contract"
	"github.com/huangsam/tempo/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// payloadVersion invalidates persisted entries when the serialized shape changes.
const payloadVersion = 1

// bucketPayload is the serialized cache value.
type bucketPayload struct {
	Version int               `json:"version"`
	Hours   schema.HourBucket `json:"hours"`
	Week    schema.WeekBucket `json:"week"`
}

// BucketStore is a sqlite-backed implementation of contract.BucketCache.
type BucketStore struct {
	db *sql.DB
}

var _ contract.BucketCache = &BucketStore{} // Compile-time check

// DefaultDBPath returns the default cache database location under the user
// cache directory, falling back to the temp dir when none is available.
func DefaultDBPath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "tempo", "buckets.db")
}

// NewBucketStore opens (and if needed initializes) the cache database at
// dbPath. An empty dbPath selects the default location.
func NewBucketStore(dbPath string) (*BucketStore, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open bucket cache at %q: %w", dbPath, err)
	}
	// A single connection avoids "database is locked" errors under the
	// retrieval worker pool.
	db.SetMaxOpenConns(1)

	const create = `
		CREATE TABLE IF NOT EXISTS bucket_cache (
			cache_key TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			created_at INTEGER NOT NULL
		);
	`
	if _, err := db.Exec(create); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize bucket cache: %w", err)
	}
	return &BucketStore{db: db}, nil
}

// Get implements the contract.BucketCache interface.
func (s *BucketStore) Get(key string) (schema.HourBucket, schema.WeekBucket, bool, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT payload FROM bucket_cache WHERE cache_key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, schema.WeekBucket{}, false, nil
	}
	if err != nil {
		return nil, schema.WeekBucket{}, false, fmt.Errorf("bucket cache get: %w", err)
	}

	var payload bucketPayload
	if err := json.Unmarshal(blob, &payload); err != nil || payload.Version != payloadVersion {
		// Unreadable or stale-format entries count as misses.
		return nil, schema.WeekBucket{}, false, nil
	}
	if payload.Hours == nil {
		payload.Hours = make(schema.HourBucket)
	}
	return payload.Hours, payload.Week, true, nil
}

// Set implements the contract.BucketCache interface.
func (s *BucketStore) Set(key string, hours schema.HourBucket, week schema.WeekBucket) error {
	blob, err := json.Marshal(bucketPayload{Version: payloadVersion, Hours: hours, Week: week})
	if err != nil {
		return fmt.Errorf("bucket cache marshal: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO bucket_cache (cache_key, payload, created_at) VALUES (?, ?, ?)`,
		key, blob, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("bucket cache set: %w", err)
	}
	return nil
}

// Entries returns the number of cached bucket pairs.
func (s *BucketStore) Entries() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM bucket_cache`).Scan(&count); err != nil {
		return 0, fmt.Errorf("bucket cache count: %w", err)
	}
	return count, nil
}

// Close implements the contract.BucketCache interface.
func (s *BucketStore) Close() error {
	return s.db.Close()
}
