package hub

import "errors"

// Sentinel errors for hub operations.
var (
	ErrClosed            = errors.New("hub is shut down")
	ErrInvalidAction     = errors.New("action has no type")
	ErrInvalidPattern    = errors.New("invalid subscription pattern")
	ErrAlreadySubscribed = errors.New("subscriber already registered")
	ErrNotSubscribed     = errors.New("subscriber not found")
	ErrWaiterClosed      = errors.New("waiter cancelled or hub shut down")
	ErrWaitTimeout       = errors.New("wait timed out")
)
