package observability

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

var ErrUnknownObserver = errors.New("unknown observer")

// Pre-registered observers resolve their logger at emit time, so replacing
// the process default (slog.SetDefault, zap.ReplaceGlobals) takes effect
// without re-registration.
var (
	observers = map[string]Observer{
		"noop": NoOpObserver{},
		"slog": NewSlogObserver(nil),
		"zap":  NewZapObserver(nil),
	}
	mutex sync.RWMutex
)

// GetObserver returns a registered observer by name.
func GetObserver(name string) (Observer, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	obs, exists := observers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObserver, name)
	}
	return obs, nil
}

// RegisterObserver adds or replaces a named observer in the global registry.
func RegisterObserver(name string, observer Observer) {
	mutex.Lock()
	defer mutex.Unlock()

	observers[name] = observer
}

// Names returns the registered observer names in ascending order.
func Names() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	return slices.Sorted(maps.Keys(observers))
}

// Resolve looks up a comma-separated list of observer names, e.g.
// "slog,zap". A single name resolves to that observer; several fan out
// through a MultiObserver in list order. Blank names are skipped and an
// empty list resolves to NoOpObserver.
func Resolve(names string) (Observer, error) {
	var resolved []Observer
	for name := range strings.SplitSeq(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		obs, err := GetObserver(name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, obs)
	}

	switch len(resolved) {
	case 0:
		return NoOpObserver{}, nil
	case 1:
		return resolved[0], nil
	default:
		return NewMultiObserver(resolved...), nil
	}
}
