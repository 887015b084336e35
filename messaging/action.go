package messaging

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Action is a typed event or command dispatched through the hub.
type Action struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Payload   any               `json:"payload,omitempty"`
	Cause     string            `json:"cause,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// Is reports whether the action's type is one of types.
func (a *Action) Is(types ...string) bool {
	return slices.Contains(types, a.Type)
}

func (a *Action) Clone() *Action {
	clone := *a
	clone.Meta = maps.Clone(a.Meta)
	return &clone
}

func (a *Action) String() string {
	return fmt.Sprintf(
		"Action{ID: %s, Type: %s, Cause: %s}",
		a.ID,
		a.Type,
		a.Cause,
	)
}

// PayloadAs returns the action payload as T. Pointer payloads are
// dereferenced so producers may dispatch either form.
func PayloadAs[T any](a *Action) (T, bool) {
	var zero T
	if a == nil {
		return zero, false
	}

	switch p := a.Payload.(type) {
	case T:
		return p, true
	case *T:
		if p == nil {
			return zero, false
		}
		return *p, true
	default:
		return zero, false
	}
}

func generateID() string {
	return uuid.Must(uuid.NewV7()).String()
}
