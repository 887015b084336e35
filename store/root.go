package store

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/tailored-agentic-units/resources/resource"
)

var emptyState = EmptyState()

// Root is an immutable snapshot of every kind's State.
type Root struct {
	states map[resource.Kind]*State
}

func NewRoot(states map[resource.Kind]*State) *Root {
	return &Root{states: maps.Clone(states)}
}

// State returns the state of kind. Kinds without a reducer read as a
// shared empty state.
func (r *Root) State(kind resource.Kind) *State {
	if r == nil {
		return emptyState
	}
	if s, ok := r.states[kind]; ok && s != nil {
		return s
	}
	return emptyState
}

func (r *Root) Kinds() []resource.Kind {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.states))
}

// with returns a root holding state for kind, or r when state is already
// stored.
func (r *Root) with(kind resource.Kind, state *State) *Root {
	if r.states[kind] == state {
		return r
	}

	next := maps.Clone(r.states)
	if next == nil {
		next = make(map[resource.Kind]*State, 1)
	}
	next[kind] = state
	return &Root{states: next}
}

// MarshalYAML renders the snapshot as a kind-keyed mapping.
func (r *Root) MarshalYAML() (any, error) {
	return r.states, nil
}

func (r *Root) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.states)
}
