// Package session wires one page session together: cache, provider
// clients, resolver, and the up-front credential probe.
package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lepinkainen/argus/internal/config"
	"github.com/lepinkainen/argus/internal/omdb"
	"github.com/lepinkainen/argus/internal/ratingcache"
	"github.com/lepinkainen/argus/internal/resolve"
	"github.com/lepinkainen/argus/internal/tmdb"
	"github.com/lepinkainen/argus/internal/viewsync"
)

// ErrKeysInvalid reports that one or both provider API keys are missing or
// were rejected by their provider. Resolution is disabled for the whole
// session; rendering from cache needs no provider and still works.
var ErrKeysInvalid = errors.New("provider API keys missing or invalid")

// Session holds the shared collaborators for one page session.
type Session struct {
	Cache    *ratingcache.Manager
	TMDB     *tmdb.Client
	OMDB     *omdb.Client
	Resolver *resolve.Resolver

	store          ratingcache.Store
	resolveEnabled bool
}

// Option adjusts session construction, mainly for tests.
type Option func(*options)

type options struct {
	tmdbOpts []tmdb.Option
	omdbOpts []omdb.Option
}

// WithTMDBOptions forwards options to the TMDB client constructor.
func WithTMDBOptions(opts ...tmdb.Option) Option {
	return func(o *options) {
		o.tmdbOpts = append(o.tmdbOpts, opts...)
	}
}

// WithOMDBOptions forwards options to the OMDB client constructor.
func WithOMDBOptions(opts ...omdb.Option) Option {
	return func(o *options) {
		o.omdbOpts = append(o.omdbOpts, opts...)
	}
}

// New opens the cache and probes both provider keys once. Invalid or
// missing keys do not fail construction: the session comes up with
// resolution disabled and only serves what the cache already has.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Session, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	store, err := ratingcache.NewSQLiteStore(cfg.CacheDBFile)
	if err != nil {
		return nil, err
	}

	cache, err := ratingcache.NewManager(store, cfg.CacheTTLDays)
	if err != nil {
		closeErr := store.Close()
		return nil, errors.Join(err, closeErr)
	}

	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey, o.tmdbOpts...)
	omdbClient := omdb.NewClient(cfg.OMDBAPIKey, o.omdbOpts...)

	s := &Session{
		Cache:    cache,
		TMDB:     tmdbClient,
		OMDB:     omdbClient,
		Resolver: resolve.NewResolver(tmdbClient),
		store:    store,
	}

	s.resolveEnabled = s.probeKeys(ctx, cfg)
	if !s.resolveEnabled {
		slog.Warn("Provider keys unusable, serving cached ratings only")
	}

	return s, nil
}

// probeKeys validates both provider keys with one cheap call each. Either
// failing makes the whole resolution capability unusable.
func (s *Session) probeKeys(ctx context.Context, cfg config.Config) bool {
	if cfg.TMDBAPIKey == "" || cfg.OMDBAPIKey == "" {
		return false
	}
	if err := s.TMDB.CheckKey(ctx); err != nil {
		slog.Warn("TMDB key probe failed", "error", err)
		return false
	}
	if err := s.OMDB.CheckKey(ctx); err != nil {
		slog.Warn("OMDB key probe failed", "error", err)
		return false
	}
	return true
}

// ResolveEnabled reports whether the session can resolve new titles.
func (s *Session) ResolveEnabled() bool {
	return s.resolveEnabled
}

// NewController builds a view-sync controller using this session's
// collaborators and the given renderer.
func (s *Session) NewController(renderer viewsync.Renderer) *viewsync.Controller {
	return viewsync.NewController(s.Cache, s.Resolver, s.OMDB, renderer, s.resolveEnabled)
}

// Close releases the session's persistent resources.
func (s *Session) Close() error {
	return s.store.Close()
}
