package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/lepinkainen/argus/internal/config"
	"github.com/lepinkainen/argus/internal/ratingcache"
)

// CacheCmd groups the rating cache subcommands.
type CacheCmd struct {
	Show       ShowCacheCmd       `cmd:"" help:"List cached rating summaries"`
	Invalidate InvalidateCacheCmd `cmd:"" help:"Drop all cached rating summaries"`
}

// ShowCacheCmd lists every cached title with its summary.
type ShowCacheCmd struct{}

func (s *ShowCacheCmd) Run() error {
	manager, closeFn, err := openCache()
	if err != nil {
		return err
	}
	defer closeFn()

	entries := manager.Entries()
	if len(entries) == 0 {
		fmt.Println("Rating cache is empty")
		return nil
	}

	titles := make([]string, 0, len(entries))
	for title := range entries {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	for _, title := range titles {
		summary := entries[title]
		fmt.Printf("%s - %s (updated %s)\n", title, formatSummary(summary), summary.Updated.Format("2006-01-02 15:04"))
	}
	return nil
}

// InvalidateCacheCmd clears the whole rating cache.
type InvalidateCacheCmd struct{}

func (i *InvalidateCacheCmd) Run() error {
	manager, closeFn, err := openCache()
	if err != nil {
		return err
	}
	defer closeFn()

	removed, err := manager.Invalidate()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	slog.Info("Rating cache invalidated", "entries_removed", removed)
	return nil
}

// openCache opens the cache without a provider session; cache inspection
// needs no API keys.
func openCache() (*ratingcache.Manager, func(), error) {
	cfg := config.Load()

	store, err := ratingcache.NewSQLiteStore(cfg.CacheDBFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	manager, err := ratingcache.NewManager(store, cfg.CacheTTLDays)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return manager, func() { _ = store.Close() }, nil
}
