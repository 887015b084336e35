package observability

// Event types emitted by the resource-state layer.
const (
	EventStoreReduce EventType = "store.reduce"

	EventRouterEmit   EventType = "router.emit"
	EventRouterIgnore EventType = "router.ignore"
	EventRouterEmpty  EventType = "router.empty_response"

	EventFormSubmit    EventType = "form.submit"
	EventFormResolved  EventType = "form.resolved"
	EventFormRejected  EventType = "form.rejected"
	EventFormCancelled EventType = "form.cancelled"

	EventTransportInvoke   EventType = "transport.invoke"
	EventTransportComplete EventType = "transport.complete"
)
