package transport

import "errors"

// Sentinel errors for transport operations.
var (
	ErrInvalidCall    = errors.New("call has no method")
	ErrUnknownService = errors.New("no service for method")
	ErrInvalidLog     = errors.New("invalid event log")
	ErrClientClosed   = errors.New("transport client is closed")
)
