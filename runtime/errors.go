package runtime

import "errors"

var (
	// ErrUnmanagedKind is returned by accessors for kinds the runtime was
	// not configured with.
	ErrUnmanagedKind = errors.New("unmanaged resource kind")

	// ErrUnknownForm is returned by Submit and Form for forms no resource
	// declares.
	ErrUnknownForm = errors.New("unknown form")
)
