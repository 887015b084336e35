package hub

import (
	"context"
	"sync"
)

// slot is a single-value mailbox. The first offer wins; later offers and
// offers after close are refused.
type slot[T any] struct {
	ch     chan T
	mu     sync.Mutex
	filled bool
	closed bool
}

func newSlot[T any]() *slot[T] {
	return &slot[T]{ch: make(chan T, 1)}
}

// offer stores value and reports whether it was accepted.
func (s *slot[T]) offer(value T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filled || s.closed {
		return false
	}
	s.filled = true
	s.ch <- value
	return true
}

// receive blocks until a value is offered, the slot is closed or ctx is
// done. A value offered before close is still delivered.
func (s *slot[T]) receive(ctx context.Context) (T, error) {
	var zero T
	select {
	case value, ok := <-s.ch:
		if !ok {
			return zero, ErrWaiterClosed
		}
		return value, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (s *slot[T]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
