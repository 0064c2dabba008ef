// Package feed turns a JSON-lines stream of appearing view items into
// viewsync change batches. Each input line is either a single item object
// or an array of items that appeared together.
package feed

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lepinkainen/argus/internal/media"
	"github.com/lepinkainen/argus/internal/viewsync"
)

// Item is one media tile appearing in the view. ID identifies the node;
// tiles for the same logical media can appear repeatedly under new IDs.
type Item struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Year   string     `json:"year,omitempty"`
	Person string     `json:"person,omitempty"`
	Role   media.Role `json:"role,omitempty"`
}

// Key identifies the view node for at-most-once annotation.
func (i Item) Key() string {
	if i.ID != "" {
		return i.ID
	}
	return i.Title
}

// Descriptor returns the extracted media descriptor for this item.
func (i Item) Descriptor() (media.Descriptor, error) {
	if i.Title == "" {
		return media.Descriptor{}, fmt.Errorf("feed item %q has no title", i.ID)
	}
	return media.Descriptor{
		Title:  i.Title,
		Year:   i.Year,
		Person: i.Person,
		Role:   i.Role,
	}, nil
}

// Reader reads a JSON-lines feed and exposes it as a viewsync.Source.
type Reader struct {
	in      io.Reader
	changes chan viewsync.Batch
}

// NewReader creates a feed reader over in. Call Run to start it.
func NewReader(in io.Reader) *Reader {
	return &Reader{
		in:      in,
		changes: make(chan viewsync.Batch),
	}
}

// Changes returns the batch channel. It closes when the input ends.
func (r *Reader) Changes() <-chan viewsync.Batch {
	return r.changes
}

// Run scans the input line by line, emitting one batch per line, until EOF
// or context cancellation. Malformed lines are skipped with a warning so a
// bad record cannot stall the stream.
func (r *Reader) Run(ctx context.Context) error {
	defer close(r.changes)

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		batch, err := parseLine(line)
		if err != nil {
			slog.Warn("Skipping malformed feed line", "error", err)
			continue
		}
		if len(batch) == 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case r.changes <- batch:
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read feed: %w", err)
	}
	return nil
}

func parseLine(line string) (viewsync.Batch, error) {
	var items []Item
	if strings.HasPrefix(line, "[") {
		if err := json.Unmarshal([]byte(line), &items); err != nil {
			return nil, err
		}
	} else {
		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			return nil, err
		}
		items = []Item{item}
	}

	batch := make(viewsync.Batch, 0, len(items))
	for _, item := range items {
		batch = append(batch, item)
	}
	return batch, nil
}
