package store

import (
	"maps"
	"reflect"
	"slices"

	"github.com/tailored-agentic-units/resources/resource"
)

// State is the normalized store of one resource kind, keyed by resource
// name. A State is never modified after it is returned.
type State struct {
	Entries map[string]resource.Entry `json:"entries" yaml:"entries"`
}

func EmptyState() *State {
	return &State{Entries: map[string]resource.Entry{}}
}

func (s *State) Len() int {
	return len(s.Entries)
}

func (s *State) Get(name string) (resource.Entry, bool) {
	entry, ok := s.Entries[name]
	return entry, ok
}

// Names returns the stored names in ascending order.
func (s *State) Names() []string {
	return slices.Sorted(maps.Keys(s.Entries))
}

// Merge folds entries into the state keyed by their names. Stored fields
// missing from an incoming entry are kept. Entries without a name are
// skipped. The receiver is returned when no entry changes.
func (s *State) Merge(entries ...resource.Entry) *State {
	var next map[string]resource.Entry

	for _, incoming := range entries {
		name, ok := incoming.Name()
		if !ok {
			continue
		}

		current := s.Entries
		if next != nil {
			current = next
		}

		existing, exists := current[name]
		merged := existing.Merge(incoming)
		if exists && reflect.DeepEqual(existing, merged) {
			continue
		}

		if next == nil {
			next = maps.Clone(s.Entries)
			if next == nil {
				next = make(map[string]resource.Entry, len(entries))
			}
		}
		next[name] = merged
	}

	if next == nil {
		return s
	}
	return &State{Entries: next}
}

// Delete removes name. The receiver is returned when name is not stored.
func (s *State) Delete(name string) *State {
	if _, ok := s.Entries[name]; !ok {
		return s
	}

	next := maps.Clone(s.Entries)
	delete(next, name)
	return &State{Entries: next}
}
