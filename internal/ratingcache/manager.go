package ratingcache

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lepinkainen/argus/internal/rating"
)

// DefaultTTLDays is the default maximum age of an accurate cache entry.
const DefaultTTLDays = 1

// Manager holds the working copy of the rating cache for one session.
// Lookups hit memory; every upsert is written through to the store in full.
// Two overlapping resolutions for the same title are allowed; the later
// write simply wins.
type Manager struct {
	mu       sync.RWMutex
	store    Store
	entries  map[string]rating.Summary
	ttlDays  int
	onUpdate func(title string)
}

// NewManager loads the persisted cache and returns a manager over it.
// ttlDays <= 0 selects the default.
func NewManager(store Store, ttlDays int) (*Manager, error) {
	if ttlDays <= 0 {
		ttlDays = DefaultTTLDays
	}

	entries, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load rating cache: %w", err)
	}

	slog.Debug("Rating cache loaded", "entries", len(entries), "ttl_days", ttlDays)

	return &Manager{
		store:   store,
		entries: entries,
		ttlDays: ttlDays,
	}, nil
}

// OnUpdate registers a callback invoked after each successful upsert, so
// views rendered from older cache state can refresh themselves.
func (m *Manager) OnUpdate(fn func(title string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUpdate = fn
}

// Lookup returns the cached summary for a displayed title, if any.
// Titles are compared exactly as displayed.
func (m *Manager) Lookup(title string) (rating.Summary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	summary, ok := m.entries[title]
	return summary, ok
}

// Fresh reports whether a cached summary is still usable without
// re-resolution. A summary from an unanchored title search is never fresh:
// a later attempt may find a person-anchored match and should get the
// chance to.
func (m *Manager) Fresh(summary rating.Summary) bool {
	return m.freshAt(summary, time.Now())
}

func (m *Manager) freshAt(summary rating.Summary, now time.Time) bool {
	if !summary.Accurate {
		return false
	}
	ageDays := float64(summary.Age(now).Milliseconds()) / float64((24 * time.Hour).Milliseconds())
	return ageDays <= float64(m.ttlDays)
}

// Upsert merges a summary into the cache and writes the whole store back.
// Empty summaries are rejected; a resolution that found nothing must not
// be persisted.
func (m *Manager) Upsert(title string, summary rating.Summary) error {
	if summary.Empty() {
		return fmt.Errorf("refusing to cache empty summary for %q", title)
	}

	m.mu.Lock()
	m.entries[title] = summary
	snapshot := make(map[string]rating.Summary, len(m.entries))
	for k, v := range m.entries {
		snapshot[k] = v
	}
	notify := m.onUpdate
	m.mu.Unlock()

	if err := m.store.Save(snapshot); err != nil {
		return fmt.Errorf("failed to persist rating cache: %w", err)
	}

	slog.Debug("Rating cache updated", "title", title, "accurate", summary.Accurate)

	if notify != nil {
		notify(title)
	}
	return nil
}

// Entries returns a snapshot of the current cache contents.
func (m *Manager) Entries() map[string]rating.Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]rating.Summary, len(m.entries))
	for k, v := range m.entries {
		snapshot[k] = v
	}
	return snapshot
}

// Invalidate drops every cached entry and persists the now-empty store.
// Returns the number of entries removed.
func (m *Manager) Invalidate() (int, error) {
	m.mu.Lock()
	removed := len(m.entries)
	m.entries = make(map[string]rating.Summary)
	m.mu.Unlock()

	if err := m.store.Save(map[string]rating.Summary{}); err != nil {
		return 0, fmt.Errorf("failed to persist rating cache: %w", err)
	}
	return removed, nil
}
