// Package store folds resource lifecycle actions into normalized,
// immutable state and exposes memoized read views over it.
//
// Every transition returns a new *State; a transition that changes nothing
// returns its input. Selectors key their caches on that pointer, so a
// derived view is recomputed only when the underlying entries change.
package store
