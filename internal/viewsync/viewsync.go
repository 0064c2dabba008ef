// Package viewsync bridges an externally mutating view, where media tiles
// appear asynchronously and sometimes repeatedly, to the rating resolution
// pipeline, annotating each tile at most once.
package viewsync

import (
	"github.com/lepinkainen/argus/internal/media"
	"github.com/lepinkainen/argus/internal/rating"
)

// Element is one observed view item. Key identifies the underlying node:
// a key that was annotated once is never annotated again, even when the
// same node shows up in a later change batch.
type Element interface {
	Key() string
	Descriptor() (media.Descriptor, error)
}

// Batch is one burst of elements that appeared together.
type Batch []Element

// Source yields batches of structural view changes. There is no ordering
// guarantee between batches; the channel closes when the view goes away.
type Source interface {
	Changes() <-chan Batch
}

// Renderer attaches a rating summary to an element. The controller
// guarantees at most one call per element key, so implementations need not
// deduplicate themselves.
type Renderer interface {
	Render(el Element, summary rating.Summary)
}

// state tracks where an element is in its annotation lifecycle.
type state int

const (
	stateUnseen state = iota
	stateAwaitingCache
	stateAwaitingResolution
	stateAnnotated
)
