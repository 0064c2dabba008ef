package ratingcache

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/lepinkainen/argus/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "ratings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	updated := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	saved := map[string]rating.Summary{
		"Arrival": {
			MediaType: "movie",
			Accurate:  true,
			Updated:   updated,
			Sources: map[rating.Source]rating.Score{
				rating.SourceTMDB: {Value: "7.9", Votes: "18000", RefID: "329865"},
				rating.SourceIMDB: {Value: "7.9", Votes: "768,141", RefID: "tt2543164"},
			},
		},
		"Some Obscure Doc": {
			MediaType: "tv",
			Accurate:  false,
			Updated:   updated.Add(-72 * time.Hour),
			Sources: map[rating.Source]rating.Score{
				rating.SourceMetacritic: {Value: "55"},
			},
		},
	}

	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	// The inaccurate flag must survive persistence; it decides staleness.
	assert.False(t, loaded["Some Obscure Doc"].Accurate)
}

func TestStore_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestStore_SaveReplacesWholeBlob(t *testing.T) {
	store := newTestStore(t)

	first := map[string]rating.Summary{
		"Arrival": {MediaType: "movie", Accurate: true, Updated: time.Now().UTC(),
			Sources: map[rating.Source]rating.Score{rating.SourceTMDB: {Value: "7.9"}}},
	}
	require.NoError(t, store.Save(first))

	second := map[string]rating.Summary{
		"Dune": {MediaType: "movie", Accurate: true, Updated: time.Now().UTC(),
			Sources: map[rating.Source]rating.Score{rating.SourceTMDB: {Value: "8.0"}}},
	}
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.NotContains(t, loaded, "Arrival")
	assert.Contains(t, loaded, "Dune")
}

func TestStore_MalformedEntriesBecomeMisses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	good := rating.Summary{
		MediaType: "movie",
		Accurate:  true,
		Updated:   time.Now().UTC(),
		Sources:   map[rating.Source]rating.Score{rating.SourceTMDB: {Value: "7.9"}},
	}
	goodBlob, err := json.Marshal(good)
	require.NoError(t, err)

	// Hand-write a blob with one valid entry, one that is not JSON for a
	// summary, and one missing its required fields.
	blob := []byte(`{
		"Arrival": ` + string(goodBlob) + `,
		"Broken": [1, 2, 3],
		"Incomplete": {"accurate_result": true}
	}`)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(
		"INSERT INTO rating_store (ns, data, updated_at) VALUES (?, ?, ?) ON CONFLICT(ns) DO UPDATE SET data = excluded.data",
		storeNamespace, blob, time.Now().UTC(),
	)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Contains(t, loaded, "Arrival")
}

func TestStore_CorruptBlobStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(
		"INSERT INTO rating_store (ns, data, updated_at) VALUES (?, ?, ?)",
		storeNamespace, []byte("not json at all"), time.Now().UTC(),
	)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
