package ratingcache

import (
	"fmt"
	"testing"
	"time"

	"github.com/lepinkainen/argus/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for manager tests.
type memStore struct {
	entries  map[string]rating.Summary
	saves    int
	saveErr  error
	loadErr  error
	lastSave map[string]rating.Summary
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]rating.Summary)}
}

func (s *memStore) Load() (map[string]rating.Summary, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make(map[string]rating.Summary, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out, nil
}

func (s *memStore) Save(entries map[string]rating.Summary) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.lastSave = entries
	s.entries = entries
	return nil
}

func (s *memStore) Close() error { return nil }

func testSummary(accurate bool, age time.Duration) rating.Summary {
	return rating.Summary{
		MediaType: "movie",
		Accurate:  accurate,
		Updated:   time.Now().Add(-age),
		Sources: map[rating.Source]rating.Score{
			rating.SourceTMDB: {Value: "7.5", Votes: "100", RefID: "1"},
		},
	}
}

func TestFresh_TTL(t *testing.T) {
	manager, err := NewManager(newMemStore(), 1)
	require.NoError(t, err)

	assert.True(t, manager.Fresh(testSummary(true, 12*time.Hour)))
	assert.False(t, manager.Fresh(testSummary(true, 48*time.Hour)))
}

func TestFresh_InaccurateNeverFresh(t *testing.T) {
	manager, err := NewManager(newMemStore(), 1)
	require.NoError(t, err)

	// Even a summary fused seconds ago is stale when the match was not
	// anchored on a person credit.
	assert.False(t, manager.Fresh(testSummary(false, time.Second)))
	assert.False(t, manager.Fresh(testSummary(false, 12*time.Hour)))
	assert.False(t, manager.Fresh(testSummary(false, 100*24*time.Hour)))
}

func TestFresh_CustomTTL(t *testing.T) {
	manager, err := NewManager(newMemStore(), 7)
	require.NoError(t, err)

	assert.True(t, manager.Fresh(testSummary(true, 6*24*time.Hour)))
	assert.False(t, manager.Fresh(testSummary(true, 8*24*time.Hour)))
}

func TestUpsert_WritesThrough(t *testing.T) {
	store := newMemStore()
	manager, err := NewManager(store, 1)
	require.NoError(t, err)

	summary := testSummary(true, 0)
	require.NoError(t, manager.Upsert("Arrival", summary))

	assert.Equal(t, 1, store.saves)
	assert.Contains(t, store.lastSave, "Arrival")

	got, ok := manager.Lookup("Arrival")
	require.True(t, ok)
	assert.Equal(t, summary.Sources, got.Sources)
}

func TestUpsert_RejectsEmptySummary(t *testing.T) {
	store := newMemStore()
	manager, err := NewManager(store, 1)
	require.NoError(t, err)

	empty := rating.Summary{MediaType: "movie", Accurate: true, Updated: time.Now()}
	assert.Error(t, manager.Upsert("Nothing Found", empty))
	assert.Equal(t, 0, store.saves)
}

func TestUpsert_NotifiesAfterPersist(t *testing.T) {
	store := newMemStore()
	manager, err := NewManager(store, 1)
	require.NoError(t, err)

	var notified []string
	manager.OnUpdate(func(title string) {
		notified = append(notified, title)
		// The write must already be durable when the callback fires.
		assert.Equal(t, 1, store.saves)
	})

	require.NoError(t, manager.Upsert("Arrival", testSummary(true, 0)))
	assert.Equal(t, []string{"Arrival"}, notified)
}

func TestUpsert_SaveFailureReported(t *testing.T) {
	store := newMemStore()
	store.saveErr = fmt.Errorf("disk full")
	manager, err := NewManager(store, 1)
	require.NoError(t, err)

	notified := false
	manager.OnUpdate(func(string) { notified = true })

	assert.Error(t, manager.Upsert("Arrival", testSummary(true, 0)))
	assert.False(t, notified)
}

func TestLookup_ExactTitleKey(t *testing.T) {
	manager, err := NewManager(newMemStore(), 1)
	require.NoError(t, err)
	require.NoError(t, manager.Upsert("Arrival", testSummary(true, 0)))

	_, ok := manager.Lookup("arrival")
	assert.False(t, ok, "titles are compared exactly as displayed")

	_, ok = manager.Lookup("Arrival ")
	assert.False(t, ok)
}

func TestInvalidate(t *testing.T) {
	store := newMemStore()
	manager, err := NewManager(store, 1)
	require.NoError(t, err)
	require.NoError(t, manager.Upsert("Arrival", testSummary(true, 0)))
	require.NoError(t, manager.Upsert("Dune", testSummary(false, 0)))

	removed, err := manager.Invalidate()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, manager.Entries())
	assert.Empty(t, store.entries)
}

func TestEntries_Snapshot(t *testing.T) {
	manager, err := NewManager(newMemStore(), 1)
	require.NoError(t, err)
	require.NoError(t, manager.Upsert("Arrival", testSummary(true, 0)))

	snapshot := manager.Entries()
	delete(snapshot, "Arrival")

	_, ok := manager.Lookup("Arrival")
	assert.True(t, ok, "mutating the snapshot must not affect the cache")
}
