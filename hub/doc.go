// Package hub dispatches actions to subscribers in arrival order.
//
// The hub is the effects runtime of the resource-state layer. Transport
// adapters, the event router, the store and form workflows are independent
// consumers of one action stream; the hub delivers every action to every
// matching subscriber before it moves on to the next action.
//
// # Delivery
//
// Dispatch appends the action to a queue. The first dispatcher to find the
// queue idle drains it, delivering each action to subscribers in
// registration order. Actions dispatched while a delivery is in progress
// (for example, a router re-emitting a resource-scoped action from inside
// its handler) are queued behind the current action, so delivery order is
// always arrival order and handlers never observe re-entrant calls.
//
// # Subscriptions
//
// Subscribers select actions with glob patterns matched against the action
// type, using doublestar syntax. Action types use " / " as a separator, so
// "@ projects / *" selects every projects lifecycle action while "**"
// selects everything:
//
//	h.Subscribe("audit", handler, "@ projects / *_FAILED")
//
// # Waiters
//
// Await registers a one-shot waiter that receives the first action matching
// any of its patterns and is then removed. Waiters are resolved after the
// action has been delivered to subscribers, so a waiter woken by a succeeded
// action observes a store that has already folded it:
//
//	w, _ := h.Await(types.For(resource.RequestCreate, resource.StatusSucceeded),
//	    types.For(resource.RequestCreate, resource.StatusFailed))
//	h.Dispatch(ctx, command)
//	outcome, err := w.Wait(ctx)
//
// Register a waiter before dispatching the command it waits on; an
// action that is delivered before the waiter exists is not replayed.
package hub
