package resource

import (
	"fmt"
	"maps"
	"slices"
)

// ActionTypes is the closed table of lifecycle action identifiers for one
// resource kind: one identifier per descriptor, 15 in total.
type ActionTypes struct {
	kind        Kind
	descriptors []Descriptor
	types       map[Descriptor]string
	reverse     map[string]Descriptor
}

// Identifier returns the namespaced action type for a kind and descriptor,
// e.g. "@ projects / CREATE_SUCCEEDED".
func Identifier(kind Kind, descriptor Descriptor) string {
	return fmt.Sprintf("@ %s / %s", kind.SnakeName(), descriptor)
}

// BuildActionTypes derives the action-type table of kind. Iteration is outer
// over request kinds and inner over statuses, so Descriptors is stable.
func BuildActionTypes(kind Kind) ActionTypes {
	t := ActionTypes{
		kind:        kind,
		descriptors: make([]Descriptor, 0, len(requestKinds)*len(statuses)),
		types:       make(map[Descriptor]string, len(requestKinds)*len(statuses)),
		reverse:     make(map[string]Descriptor, len(requestKinds)*len(statuses)),
	}

	for _, request := range requestKinds {
		for _, status := range statuses {
			descriptor := NewDescriptor(request, status)
			id := Identifier(kind, descriptor)

			t.descriptors = append(t.descriptors, descriptor)
			t.types[descriptor] = id
			t.reverse[id] = descriptor
		}
	}

	return t
}

// Kind returns the resource kind the table was built for.
func (t ActionTypes) Kind() Kind {
	return t.kind
}

// Get returns the identifier registered under descriptor.
func (t ActionTypes) Get(descriptor Descriptor) (string, bool) {
	id, ok := t.types[descriptor]
	return id, ok
}

// For returns the identifier of a request kind and status. It returns an
// empty string when either value is outside its closed set.
func (t ActionTypes) For(request RequestKind, status Status) string {
	return t.types[NewDescriptor(request, status)]
}

// Descriptor resolves an identifier back to its descriptor.
func (t ActionTypes) Descriptor(actionType string) (Descriptor, bool) {
	d, ok := t.reverse[actionType]
	return d, ok
}

// Descriptors lists the descriptors in generation order.
func (t ActionTypes) Descriptors() []Descriptor {
	return slices.Clone(t.descriptors)
}

// Map returns a copy of the descriptor to identifier table.
func (t ActionTypes) Map() map[Descriptor]string {
	return maps.Clone(t.types)
}

// Len returns the number of identifiers in the table.
func (t ActionTypes) Len() int {
	return len(t.types)
}
