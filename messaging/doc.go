// Package messaging provides the action envelope that flows through the hub.
//
// An action is the unit of change in the resource-state layer: transport
// adapters emit lifecycle actions, the event router re-emits them as
// resource-scoped actions, reducers fold them into the store, and form
// workflows wait for them.
//
// # Action Construction
//
// Actions are constructed using a fluent builder API:
//
//	action := messaging.NewAction("@ projects / LIST_SUCCEEDED", payload).
//	    CausedBy(original.ID).
//	    Meta(map[string]string{"form": "project"}).
//	    Build()
//
// # Action Metadata
//
// Each action includes:
//
//   - ID: UUIDv7 providing time-sortable unique identification
//   - Type: the identifier subscribers and reducers match on
//   - Payload: a typed value owned by the package that defines the type
//   - Timestamp: creation time
//   - Cause: ID of the action this one was derived from, if any
//   - Meta: extensible key-value metadata
package messaging
