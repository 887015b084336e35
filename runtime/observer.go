package runtime

import "github.com/tailored-agentic-units/resources/observability"

// Runtime event types emitted across the runtime lifecycle.
const (
	EventStart    observability.EventType = "runtime.start"
	EventShutdown observability.EventType = "runtime.shutdown"
)
