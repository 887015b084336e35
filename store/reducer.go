package store

import (
	"github.com/ohler55/ojg/jp"

	"github.com/tailored-agentic-units/resources/messaging"
	"github.com/tailored-agentic-units/resources/resource"
	"github.com/tailored-agentic-units/resources/transport"
)

// Reducer folds the lifecycle actions of one resource kind into its State.
type Reducer struct {
	kind  resource.Kind
	types resource.ActionTypes

	// $.<plural>[*]: list responses carry their entries as an array or a
	// map under the kind's plural noun.
	listEntries jp.Expr
}

func NewReducer(kind resource.Kind, types resource.ActionTypes) Reducer {
	return Reducer{
		kind:        kind,
		types:       types,
		listEntries: jp.R().C(kind.Plural()).W(),
	}
}

func (r Reducer) Kind() resource.Kind {
	return r.kind
}

// Reduce returns the state after action. Actions of other kinds, statuses
// other than succeeded and malformed payloads leave state unchanged. A nil
// state is treated as empty.
func (r Reducer) Reduce(state *State, action *messaging.Action) *State {
	if state == nil {
		state = EmptyState()
	}
	if action == nil {
		return state
	}

	descriptor, ok := r.types.Descriptor(action.Type)
	if !ok {
		return state
	}

	request, status, ok := descriptor.Split()
	if !ok || status != resource.StatusSucceeded {
		return state
	}

	response, ok := messaging.PayloadAs[transport.Succeeded](action)
	if !ok {
		return state
	}

	switch request {
	case resource.RequestList:
		return state.Merge(r.entries(response.Data)...)

	case resource.RequestGet, resource.RequestCreate, resource.RequestUpdate:
		entry := resource.Entry(response.Data)
		if _, ok := entry.Name(); !ok {
			return state
		}
		return state.Merge(entry)

	case resource.RequestDestroy:
		name, ok := resource.Entry(response.Request.Data).Name()
		if !ok {
			return state
		}
		return state.Delete(name)
	}

	return state
}

func (r Reducer) entries(data map[string]any) []resource.Entry {
	if data == nil {
		return nil
	}

	values := r.listEntries.Get(data)
	entries := make([]resource.Entry, 0, len(values))
	for _, v := range values {
		if entry, ok := resource.EntryFrom(v); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
