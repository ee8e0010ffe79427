package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/pasty/pkg/core"
)

// NoteEvent is a note change delivered through a lifecycle.Source.
type NoteEvent struct {
	core.Event
}

// Kind returns the change type: CREATE, MODIFY or DELETE.
func (e NoteEvent) Kind() string { return string(e.Type) }

// Option configures a note source.
type Option func(*noteSource)

// WithUser restricts the source to changes of one user's notes.
func WithUser(userID string) Option {
	return func(s *noteSource) {
		s.user = userID
	}
}

type noteSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	user   string
}

// NewSource creates a lifecycle.Source that emits note change events as NoteEvent.
// A change reported twice in a row, as happens when a new user directory is
// reconciled while its first note lands, is delivered once.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &noteSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *noteSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx is done or the upstream channel closes,
// then closes the output channel.
func (s *noteSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)

		var last core.Event
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.user != "" && e.UserID != s.user {
					continue
				}
				if sameChange(e, last) {
					continue
				}
				last = e

				select {
				case s.out <- NoteEvent{Event: e}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

// sameChange reports whether two events describe the same change within one second.
func sameChange(a, b core.Event) bool {
	return a.Type == b.Type && a.UserID == b.UserID && a.Name == b.Name && a.Timestamp == b.Timestamp
}
