// ABOUTME: The TTL-indexed result cache — an external, core-agnostic
// ABOUTME: collaborator that sits in front of /extract.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a TTL-indexed key/value cache backed by a single sqlite file.
// It knows nothing about scopes, formats, or extraction semantics; it
// only stores whatever string a caller hands it under a key the caller
// derives.
type Store struct {
	db *sql.DB
}

// Open creates (or reuses) a sqlite-backed store at path. Pass ":memory:"
// for an ephemeral, process-local cache.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	const schema = `CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Key derives the cache key for an (html, scope, format) triple.
func Key(html, scope, format string) string {
	h := sha256.New()
	h.Write([]byte(html))
	h.Write([]byte{0})
	h.Write([]byte(scope))
	h.Write([]byte{0})
	h.Write([]byte(format))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached value for key, or ok=false if absent or expired.
// An expired row is lazily deleted rather than left for Purge to find.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT value, expires_at FROM cache WHERE key = ?`, key)

	var expiresAt int64
	if err := row.Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}

	if time.Now().Unix() >= expiresAt {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM cache WHERE key = ?`, key)
		return "", false, nil
	}
	return value, true, nil
}

// Set stores value under key with the given TTL, overwriting any existing
// entry.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl).Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt)
	return err
}

// Purge deletes every entry that has already expired and reports how many
// rows were removed. Intended to be called periodically by a caller that
// owns the Store, not by the Store itself.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
