// Package lifecycle bridges note change events into the generic lifecycle
// event plumbing, so supervisors can consume storage changes alongside
// their other sources.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/inkpad-app/inkpad/pkg/core"
)

type noteSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps a channel obtained from core.Store.Watch as a
// lifecycle.Source. The returned source forwards events until the input
// channel closes or the start context is cancelled.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &noteSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *noteSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *noteSource) Start(ctx context.Context) error {
	// The bridge itself runs under lifecycle.Go so it is tracked and
	// panic-safe.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event carries String(), which is all
				// lifecycle.Event asks for.
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
