package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lepinkainen/argus/internal/rating"
	"github.com/lepinkainen/argus/internal/viewsync"
)

// lineRenderer writes one annotation line per element. The controller
// already guarantees at most one render per element, so this only has to
// format.
type lineRenderer struct {
	mu  sync.Mutex
	out io.Writer
}

func (r *lineRenderer) Render(el viewsync.Element, summary rating.Summary) {
	title := el.Key()
	if d, err := el.Descriptor(); err == nil {
		title = d.Title
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s - %s\n", title, formatSummary(summary))
}

// formatSummary renders the scores in display order, marking summaries
// from an unanchored title search as unverified.
func formatSummary(s rating.Summary) string {
	var parts []string
	for _, src := range rating.Order {
		score, ok := s.Sources[src]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", src.Label(), score.Value))
	}

	line := strings.Join(parts, "  ")
	if !s.Accurate {
		line += "  [unverified]"
	}
	return line
}
