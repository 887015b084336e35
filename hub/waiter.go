package hub

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/tailored-agentic-units/resources/messaging"
)

// Waiter receives the first action matching one of its patterns. It is
// resolved at most once; actions matching after that are not retained.
type Waiter struct {
	patterns       []string
	result         *slot[*messaging.Action]
	hub            *hub
	defaultTimeout time.Duration
}

// Patterns returns the patterns the waiter races on.
func (w *Waiter) Patterns() []string {
	return slices.Clone(w.patterns)
}

// Wait blocks until the waiter is resolved, ctx is done, the default timeout
// elapses, or the hub shuts down. On every path other than resolution the
// waiter is cancelled.
func (w *Waiter) Wait(ctx context.Context) (*messaging.Action, error) {
	if _, ok := ctx.Deadline(); !ok && w.defaultTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.defaultTimeout)
		defer cancel()
	}

	action, err := w.result.receive(ctx)
	if err != nil {
		w.Cancel()
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %w", ErrWaitTimeout, err)
		}
		return nil, err
	}
	return action, nil
}

// Cancel withdraws the waiter from the hub. Cancelling a resolved waiter
// leaves its action readable by a pending Wait.
func (w *Waiter) Cancel() {
	if w.hub.removeWaiter(w) {
		w.result.close()
	}
}
