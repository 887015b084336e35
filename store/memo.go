package store

import "sync"

// memo caches one value derived from a State, recomputing it only when a
// different *State is presented.
type memo[T any] struct {
	mu      sync.Mutex
	state   *State
	value   T
	compute func(*State) T
}

func newMemo[T any](compute func(*State) T) *memo[T] {
	return &memo[T]{compute: compute}
}

func (m *memo[T]) get(state *State) T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != state {
		m.value = m.compute(state)
		m.state = state
	}
	return m.value
}
