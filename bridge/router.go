// Package bridge turns generic transport lifecycle actions into the typed
// actions of one resource kind.
package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/tailored-agentic-units/resources/classify"
	"github.com/tailored-agentic-units/resources/hub"
	"github.com/tailored-agentic-units/resources/messaging"
	"github.com/tailored-agentic-units/resources/observability"
	"github.com/tailored-agentic-units/resources/resource"
	"github.com/tailored-agentic-units/resources/transport"
)

// Router re-emits the transport actions of one resource kind as that
// kind's typed lifecycle actions, carrying the original payload. It is the
// only producer of typed lifecycle actions.
type Router struct {
	kind     resource.Kind
	types    resource.ActionTypes
	hub      hub.Hub
	observer observability.Observer
	name     string
}

// NewRouter subscribes a router for kind to the transport lifecycle types
// on h.
func NewRouter(h hub.Hub, kind resource.Kind, types resource.ActionTypes, observer observability.Observer) (*Router, error) {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	r := &Router{
		kind:     kind,
		types:    types,
		hub:      h,
		observer: observer,
		name:     "router:" + kind.String(),
	}

	err := h.Subscribe(r.name, r.handle,
		transport.TypeInvoked,
		transport.TypeSucceeded,
		transport.TypeFailed,
		transport.TypeMetadataSet,
	)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", r.name, err)
	}
	return r, nil
}

func (r *Router) Kind() resource.Kind {
	return r.kind
}

// Route returns the typed action for a transport action, or false when the
// action does not belong to the router's kind or cannot be classified.
func (r *Router) Route(action *messaging.Action) (*messaging.Action, bool) {
	if action.Is(transport.TypeMetadataSet) {
		return nil, false
	}

	method, ok := classify.MethodFromAction(action)
	if !ok {
		return nil, false
	}

	kind, ok := classify.ResourceKindFromMethod(method)
	if !ok || kind != r.kind {
		return nil, false
	}

	request, ok := classify.RequestKindFromMethod(method)
	if !ok {
		return nil, false
	}

	status, ok := classify.StatusFromAction(action)
	if !ok {
		return nil, false
	}

	actionType, ok := r.types.Get(resource.NewDescriptor(request, status))
	if !ok {
		return nil, false
	}

	return messaging.NewAction(actionType, action.Payload).
		CausedBy(action.ID).
		Build(), true
}

func (r *Router) handle(ctx context.Context, action *messaging.Action) error {
	typed, ok := r.Route(action)
	if !ok {
		r.emit(ctx, observability.EventRouterIgnore, action, nil)
		return nil
	}

	if succeeded, ok := messaging.PayloadAs[transport.Succeeded](action); ok && classify.IsEmptyResponse(succeeded) {
		r.emit(ctx, observability.EventRouterEmpty, action, typed)
	}

	r.emit(ctx, observability.EventRouterEmit, action, typed)
	return r.hub.Dispatch(ctx, typed)
}

func (r *Router) emit(ctx context.Context, eventType observability.EventType, source, typed *messaging.Action) {
	data := map[string]any{
		"kind":        r.kind.String(),
		"action_type": source.Type,
		"action_id":   source.ID,
	}
	if typed != nil {
		data["emitted_type"] = typed.Type
	}

	r.observer.OnEvent(ctx, observability.Event{
		Type:      eventType,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    r.name,
		Data:      data,
	})
}

// Close unsubscribes the router.
func (r *Router) Close() error {
	return r.hub.Unsubscribe(r.name)
}
