package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lepinkainen/argus/internal/config"
	"github.com/lepinkainen/argus/internal/feed"
	"github.com/lepinkainen/argus/internal/session"
)

// WatchCmd consumes a JSON-lines feed of appearing view items and
// annotates each with ratings as they resolve.
type WatchCmd struct {
	Input string `short:"f" help:"Path to the view change feed (JSON lines), - for stdin" default:"-"`
}

func (w *WatchCmd) Run() error {
	ctx := context.Background()

	var in io.Reader = os.Stdin
	if w.Input != "-" {
		f, err := os.Open(w.Input)
		if err != nil {
			return fmt.Errorf("failed to open feed: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	sess, err := session.New(ctx, config.Load())
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	controller := sess.NewController(&lineRenderer{out: os.Stdout})

	reader := feed.NewReader(in)
	go func() {
		if err := reader.Run(ctx); err != nil {
			slog.Warn("Feed reader stopped", "error", err)
		}
	}()

	slog.Info("Watching view changes", "input", w.Input, "resolve_enabled", sess.ResolveEnabled())
	return controller.Run(ctx, reader)
}
