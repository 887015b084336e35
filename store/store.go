package store

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tailored-agentic-units/resources/hub"
	"github.com/tailored-agentic-units/resources/messaging"
	"github.com/tailored-agentic-units/resources/observability"
	"github.com/tailored-agentic-units/resources/resource"
)

// Subscriber is the hub subscription name of the store.
const Subscriber = "store"

// Store holds the root snapshot and folds every action delivered by the hub
// through its reducers. Reads never lock.
type Store struct {
	hub      hub.Hub
	reducers []Reducer
	observer observability.Observer

	root  atomic.Pointer[Root]
	apply sync.Mutex
}

// New creates a store with an empty state per reducer kind and subscribes
// it to every action on h. A nil hub creates a detached store driven only
// through Apply.
func New(h hub.Hub, observer observability.Observer, reducers ...Reducer) (*Store, error) {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	states := make(map[resource.Kind]*State, len(reducers))
	for _, r := range reducers {
		if _, dup := states[r.Kind()]; dup {
			return nil, fmt.Errorf("duplicate reducer for %s", r.Kind())
		}
		states[r.Kind()] = EmptyState()
	}

	s := &Store{
		hub:      h,
		reducers: reducers,
		observer: observer,
	}
	s.root.Store(NewRoot(states))

	if h != nil {
		if err := h.Subscribe(Subscriber, s.handle, hub.MatchAll); err != nil {
			return nil, fmt.Errorf("subscribe store: %w", err)
		}
	}
	return s, nil
}

// State returns the current root snapshot.
func (s *Store) State() *Root {
	return s.root.Load()
}

// Apply folds action through every reducer and returns the resulting
// snapshot.
func (s *Store) Apply(ctx context.Context, action *messaging.Action) *Root {
	s.apply.Lock()
	defer s.apply.Unlock()

	root := s.root.Load()
	next := root
	for _, r := range s.reducers {
		before := next.State(r.Kind())
		after := r.Reduce(before, action)
		if after == before {
			continue
		}

		next = next.with(r.Kind(), after)
		s.observer.OnEvent(ctx, observability.Event{
			Type:      observability.EventStoreReduce,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "store",
			Data: map[string]any{
				"kind":        string(r.Kind()),
				"action_type": action.Type,
				"action_id":   action.ID,
				"entries":     after.Len(),
			},
		})
	}

	if next != root {
		s.root.Store(next)
	}
	return next
}

func (s *Store) handle(ctx context.Context, action *messaging.Action) error {
	s.Apply(ctx, action)
	return nil
}

// Close detaches the store from its hub. The last snapshot stays readable.
func (s *Store) Close() error {
	if s.hub == nil {
		return nil
	}
	return s.hub.Unsubscribe(Subscriber)
}
