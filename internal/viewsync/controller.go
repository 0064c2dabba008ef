package viewsync

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lepinkainen/argus/internal/media"
	"github.com/lepinkainen/argus/internal/omdb"
	"github.com/lepinkainen/argus/internal/rating"
	"github.com/lepinkainen/argus/internal/ratingcache"
	"github.com/lepinkainen/argus/internal/resolve"
)

// Controller consumes view change batches and runs each new element through
// the cache-aside pipeline: fresh cache hit renders directly, anything else
// resolves, fuses, writes through the cache and then renders.
//
// Each element's processing is isolated: an error (or panic) for one
// element never aborts its batch siblings. A resolution still in flight
// when its element leaves the view is allowed to finish; the cache write
// survives, the render target is simply gone.
type Controller struct {
	cache    *ratingcache.Manager
	resolver *resolve.Resolver
	cross    *omdb.Client
	renderer Renderer

	// resolveEnabled is false when provider credentials failed their
	// session probe; cached summaries still render, nothing new resolves.
	resolveEnabled bool

	mu      sync.Mutex
	states  map[string]state
	waiting map[string]waitingElement

	wg sync.WaitGroup
}

// waitingElement is a seen-but-unannotated element, kept so a later cache
// update for its title can annotate it.
type waitingElement struct {
	el    Element
	title string
}

// NewController wires the pipeline. resolver and cross may be nil only when
// resolveEnabled is false.
func NewController(cache *ratingcache.Manager, resolver *resolve.Resolver, cross *omdb.Client, renderer Renderer, resolveEnabled bool) *Controller {
	c := &Controller{
		cache:          cache,
		resolver:       resolver,
		cross:          cross,
		renderer:       renderer,
		resolveEnabled: resolveEnabled,
		states:         make(map[string]state),
		waiting:        make(map[string]waitingElement),
	}
	cache.OnUpdate(c.cacheUpdated)
	return c
}

// Run processes change batches until the source closes or the context is
// cancelled, then waits for in-flight resolutions to finish.
func (c *Controller) Run(ctx context.Context, source Source) error {
	defer c.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch, ok := <-source.Changes():
			if !ok {
				return nil
			}
			for _, el := range batch {
				c.observe(ctx, el)
			}
		}
	}
}

// observe handles one element appearance. Failures are contained here so
// the rest of the batch keeps processing.
func (c *Controller) observe(ctx context.Context, el Element) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic while processing view element", "key", el.Key(), "panic", r)
		}
	}()

	c.mu.Lock()
	switch c.states[el.Key()] {
	case stateAnnotated, stateAwaitingResolution:
		// Already done, or a chain is on it.
		c.mu.Unlock()
		return
	case stateUnseen:
		c.states[el.Key()] = stateAwaitingCache
	case stateAwaitingCache:
	}
	c.mu.Unlock()

	descriptor, err := el.Descriptor()
	if err != nil {
		slog.Warn("Could not extract media descriptor", "key", el.Key(), "error", err)
		return
	}

	summary, cached := c.cache.Lookup(descriptor.Title)
	if cached && c.cache.Fresh(summary) {
		c.annotate(el, summary)
		return
	}

	if !c.resolveEnabled {
		// Degraded session: render whatever the cache has, however old.
		if cached {
			c.annotate(el, summary)
			return
		}
		c.park(el, descriptor.Title)
		return
	}

	c.mu.Lock()
	c.states[el.Key()] = stateAwaitingResolution
	c.waiting[el.Key()] = waitingElement{el: el, title: descriptor.Title}
	c.mu.Unlock()

	c.wg.Add(1)
	go c.resolveChain(ctx, el, descriptor)
}

// resolveChain runs the full resolution unit for one element: identity
// match, cross-reference fetch, fusion, cache write-through, render.
// Any provider failure aborts the chain without a cache write; the element
// just stays unannotated.
func (c *Controller) resolveChain(ctx context.Context, el Element, descriptor media.Descriptor) {
	defer c.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic in resolution chain", "title", descriptor.Title, "panic", r)
			c.park(el, descriptor.Title)
		}
	}()

	slog.Debug("No fresh cache entry, resolving", "title", descriptor.Title)

	match, err := c.resolver.Resolve(ctx, descriptor)
	if err != nil {
		slog.Warn("Resolution failed", "title", descriptor.Title, "error", err)
		c.park(el, descriptor.Title)
		return
	}
	if match == nil {
		c.park(el, descriptor.Title)
		return
	}

	var cross *omdb.Response
	if match.IMDBID != "" {
		// Without an IMDb ID the lookup is guaranteed to fail, so it is
		// skipped entirely rather than attempted empty.
		cross, err = c.cross.FetchByIMDBID(ctx, match.IMDBID)
		if err != nil {
			slog.Warn("Cross-reference fetch failed", "title", descriptor.Title, "imdb_id", match.IMDBID, "error", err)
			c.park(el, descriptor.Title)
			return
		}
	}

	summary := rating.Fuse(match.Entry, match.Accurate, match.IMDBID, cross)
	if summary.Empty() {
		slog.Debug("Resolution produced no rating data, not caching", "title", descriptor.Title)
		c.park(el, descriptor.Title)
		return
	}

	if err := c.cache.Upsert(descriptor.Title, summary); err != nil {
		// The data is good even if persisting it failed; render anyway.
		slog.Warn("Cache write failed", "title", descriptor.Title, "error", err)
	}

	c.annotate(el, summary)
}

// annotate renders a summary onto an element exactly once. The state map is
// the annotation marker: a second call for the same key is a no-op.
func (c *Controller) annotate(el Element, summary rating.Summary) {
	c.mu.Lock()
	if c.states[el.Key()] == stateAnnotated {
		c.mu.Unlock()
		return
	}
	c.states[el.Key()] = stateAnnotated
	delete(c.waiting, el.Key())
	c.mu.Unlock()

	c.renderer.Render(el, summary)
}

// park returns an element to the awaiting-cache state. It stays registered
// so a cache update for its title (from another chain, or another session
// view) can still annotate it, and a later re-observation may retry.
func (c *Controller) park(el Element, title string) {
	c.mu.Lock()
	if c.states[el.Key()] != stateAnnotated {
		c.states[el.Key()] = stateAwaitingCache
		c.waiting[el.Key()] = waitingElement{el: el, title: title}
	}
	c.mu.Unlock()
}

// cacheUpdated is the cache manager's write-through callback: a new summary
// for a title annotates every parked element showing that title.
func (c *Controller) cacheUpdated(title string) {
	summary, ok := c.cache.Lookup(title)
	if !ok {
		return
	}

	c.mu.Lock()
	var targets []Element
	for key, w := range c.waiting {
		if w.title == title && c.states[key] == stateAwaitingCache {
			targets = append(targets, w.el)
		}
	}
	c.mu.Unlock()

	for _, el := range targets {
		c.annotate(el, summary)
	}
}
