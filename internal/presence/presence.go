// Package presence publishes a rotating status line built from aggregate counts.
package presence

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/lifecycle"
)

// DefaultInterval is the pause between two status texts.
const DefaultInterval = 5 * time.Second

// Counter is the only view of the store the reporter needs.
type Counter interface {
	CountAllNotes(ctx context.Context) (int, error)
}

// Reporter alternates between the note count and the server count.
type Reporter struct {
	Counter  Counter
	Servers  func() int   // Optional. Reports zero servers when nil.
	Sink     func(string) // Receives every status text.
	Interval time.Duration
	Logger   *slog.Logger
}

// NotesText renders the note half of the rotation.
func NotesText(n int) string {
	return fmt.Sprintf("hosting %d %s", n, plural(n, "note", "notes"))
}

// ServersText renders the server half of the rotation.
func ServersText(n int) string {
	return fmt.Sprintf("in %d %s", n, plural(n, "server", "servers"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Run publishes status texts until ctx is done. The note count is read
// fresh each cycle; a failed count skips that text instead of stopping.
func (r *Reporter) Run(ctx context.Context) error {
	if r.Counter == nil || r.Sink == nil {
		return fmt.Errorf("presence: counter and sink are required")
	}

	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	showNotes := true
	for {
		if showNotes {
			n, err := r.Counter.CountAllNotes(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn("presence count failed", "error", err)
			} else {
				r.Sink(NotesText(n))
			}
		} else {
			servers := 0
			if r.Servers != nil {
				servers = r.Servers()
			}
			r.Sink(ServersText(servers))
		}
		showNotes = !showNotes

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Start runs the reporter in a supervised goroutine. The returned channel
// closes once the loop has exited.
func (r *Reporter) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(done)
		return r.Run(ctx)
	}, lifecycle.WithErrorHandler(func(err error) {
		if r.Logger != nil {
			r.Logger.Error("presence loop failed", "error", err)
		}
	}))
	return done
}
