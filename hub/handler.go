package hub

import (
	"context"

	"github.com/tailored-agentic-units/resources/messaging"
)

// Handler consumes a delivered action. Handlers run on the delivering
// goroutine and must not block waiting for later actions; long-running work
// belongs in a goroutine started by the handler.
type Handler func(ctx context.Context, action *messaging.Action) error
