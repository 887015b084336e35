package resource

import "errors"

// Sentinel errors for the kind registry.
var (
	ErrEmptyKind          = errors.New("resource kind is empty")
	ErrAlreadyRegistered  = errors.New("resource kind already registered")
	ErrUnknownKind        = errors.New("unknown resource kind")
	ErrInvalidRequestKind = errors.New("invalid request kind")
)
