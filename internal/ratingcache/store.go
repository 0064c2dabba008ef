// Package ratingcache persists fused rating summaries keyed by displayed
// title and decides when a cached summary is stale.
package ratingcache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lepinkainen/argus/internal/rating"
	_ "modernc.org/sqlite"
)

// storeNamespace is the single key the whole rating map is persisted under.
// Storage is whole-blob: one read at session start, one write per update.
const storeNamespace = "media_ratings"

const storeSchema = `
CREATE TABLE IF NOT EXISTS rating_store (
	ns TEXT PRIMARY KEY,
	data BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Store is the persistence boundary for the rating cache. Implementations
// read and write the full title-to-summary mapping as an opaque unit.
type Store interface {
	Load() (map[string]rating.Summary, error)
	Save(map[string]rating.Summary) error
	Close() error
}

// SQLiteStore keeps the rating mapping as a JSON blob in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewSQLiteStore opens (creating if needed) the store database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open rating store: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to rating store: %w", err), closeErr)
	}

	if _, err := db.Exec(storeSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create rating store table: %w", err), closeErr)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Load reads the persisted rating mapping. Entries that fail to decode or
// are missing required fields are dropped so they resolve again, instead of
// failing the whole load.
func (s *SQLiteStore) Load() (map[string]rating.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	err := s.db.QueryRow("SELECT data FROM rating_store WHERE ns = ?", storeNamespace).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return make(map[string]rating.Summary), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rating store: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn("Rating store blob is corrupt, starting empty", "error", err)
		return make(map[string]rating.Summary), nil
	}

	entries := make(map[string]rating.Summary, len(raw))
	for title, blob := range raw {
		var summary rating.Summary
		if err := json.Unmarshal(blob, &summary); err != nil {
			slog.Warn("Dropping undecodable cache entry", "title", title, "error", err)
			continue
		}
		if !usable(summary) {
			slog.Warn("Dropping incomplete cache entry", "title", title)
			continue
		}
		entries[title] = summary
	}

	return entries, nil
}

// Save replaces the persisted mapping with the given one.
func (s *SQLiteStore) Save(entries map[string]rating.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode rating store: %w", err)
	}

	_, err = s.db.Exec(
		"INSERT INTO rating_store (ns, data, updated_at) VALUES (?, ?, ?) ON CONFLICT(ns) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at",
		storeNamespace, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write rating store: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// usable reports whether a persisted summary has the fields a render or
// freshness check needs. Anything else counts as a cache miss.
func usable(s rating.Summary) bool {
	return s.MediaType != "" && !s.Updated.IsZero() && !s.Empty()
}
