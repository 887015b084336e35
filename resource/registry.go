package resource

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

type registry struct {
	kinds []Kind
	mu    sync.RWMutex
}

var register = &registry{
	kinds: []Kind{KindOrganization, KindProject, KindSite},
}

// Register adds a kind to the set of known resource kinds. The kind must be
// given in its plural form. Registration order is match order for the
// method classifier.
// Thread-safe for concurrent registration.
func Register(kind Kind) error {
	if kind == "" {
		return ErrEmptyKind
	}

	register.mu.Lock()
	defer register.mu.Unlock()

	if slices.Contains(register.kinds, kind) {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, kind)
	}

	register.kinds = append(register.kinds, kind)
	return nil
}

// Kinds returns the registered kinds in registration order.
func Kinds() []Kind {
	register.mu.RLock()
	defer register.mu.RUnlock()
	return slices.Clone(register.kinds)
}

// IsRegistered reports whether kind is known.
func IsRegistered(kind Kind) bool {
	register.mu.RLock()
	defer register.mu.RUnlock()
	return slices.Contains(register.kinds, kind)
}

// Lookup resolves a kind from its plural or singular noun, ignoring case.
func Lookup(name string) (Kind, error) {
	word := strings.ToLower(strings.TrimSpace(name))
	if word == "" {
		return "", ErrEmptyKind
	}

	for _, kind := range Kinds() {
		if kind.Plural() == word || kind.Plural() == Plural(word) {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKind, name)
}
