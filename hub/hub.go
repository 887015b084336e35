package hub

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tailored-agentic-units/resources/messaging"
)

// MatchAll is the pattern selecting every action.
const MatchAll = "**"

type subscription struct {
	Name     string
	Patterns []string
	Handler  Handler
}

func (s *subscription) matches(actionType string) bool {
	return matchAny(s.Patterns, actionType)
}

type Hub interface {
	Subscribe(name string, handler Handler, patterns ...string) error
	Unsubscribe(name string) error

	Dispatch(ctx context.Context, action *messaging.Action) error
	Await(patterns ...string) (*Waiter, error)

	Metrics() MetricsSnapshot
	Shutdown(timeout time.Duration) error
}

type queued struct {
	ctx    context.Context
	action *messaging.Action
}

type hub struct {
	name string

	subscriptions []*subscription
	subsMutex     sync.RWMutex

	waiters      []*Waiter
	waitersMutex sync.Mutex

	// closed, queue and draining are guarded by queueMutex; inFlight.Add
	// only runs under it while closed is false.
	queue      []queued
	draining   bool
	closed     bool
	queueMutex sync.Mutex
	inFlight   sync.WaitGroup

	defaultTimeout time.Duration

	logger  *slog.Logger
	metrics *Metrics

	ctx    context.Context
	cancel context.CancelFunc
}

func New(ctx context.Context, hubConfig Config) Hub {
	hubCtx, cancel := context.WithCancel(ctx)

	logger := hubConfig.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &hub{
		name:           hubConfig.Name,
		defaultTimeout: hubConfig.DefaultTimeout,
		logger:         logger,
		metrics:        NewMetrics(),
		ctx:            hubCtx,
		cancel:         cancel,
	}
}

func (h *hub) Subscribe(name string, handler Handler, patterns ...string) error {
	if len(patterns) == 0 {
		patterns = []string{MatchAll}
	}
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}

	h.subsMutex.Lock()
	defer h.subsMutex.Unlock()

	if h.ctx.Err() != nil {
		return ErrClosed
	}

	for _, sub := range h.subscriptions {
		if sub.Name == name {
			return fmt.Errorf("%w: %s", ErrAlreadySubscribed, name)
		}
	}

	h.subscriptions = append(h.subscriptions, &subscription{
		Name:     name,
		Patterns: slices.Clone(patterns),
		Handler:  handler,
	})
	h.metrics.RecordSubscriber(1)

	h.logger.DebugContext(
		h.ctx,
		"subscriber registered",
		slog.String("hub_name", h.name),
		slog.String("subscriber", name),
		slog.Any("patterns", patterns),
	)

	return nil
}

func (h *hub) Unsubscribe(name string) error {
	h.subsMutex.Lock()
	index := slices.IndexFunc(h.subscriptions, func(sub *subscription) bool {
		return sub.Name == name
	})
	if index >= 0 {
		h.subscriptions = slices.Delete(h.subscriptions, index, index+1)
	}
	h.subsMutex.Unlock()

	if index < 0 {
		return fmt.Errorf("%w: %s", ErrNotSubscribed, name)
	}

	h.metrics.RecordSubscriber(-1)
	h.logger.DebugContext(
		h.ctx,
		"subscriber removed",
		slog.String("hub_name", h.name),
		slog.String("subscriber", name),
	)

	return nil
}

func (h *hub) Dispatch(ctx context.Context, action *messaging.Action) error {
	if action == nil || action.Type == "" {
		return ErrInvalidAction
	}

	h.queueMutex.Lock()
	if h.closed {
		h.queueMutex.Unlock()
		return ErrClosed
	}
	h.metrics.RecordDispatched(1)
	h.queue = append(h.queue, queued{ctx: ctx, action: action})
	if h.draining {
		h.queueMutex.Unlock()
		return nil
	}
	h.draining = true
	h.inFlight.Add(1)
	h.queueMutex.Unlock()

	h.drain()
	return nil
}

func (h *hub) Await(patterns ...string) (*Waiter, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no patterns", ErrInvalidPattern)
	}
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}

	h.waitersMutex.Lock()
	defer h.waitersMutex.Unlock()

	if h.ctx.Err() != nil {
		return nil, ErrClosed
	}

	w := &Waiter{
		patterns:       slices.Clone(patterns),
		result:         newSlot[*messaging.Action](),
		hub:            h,
		defaultTimeout: h.defaultTimeout,
	}
	h.waiters = append(h.waiters, w)
	h.metrics.RecordWaiter(1)

	return w, nil
}

func (h *hub) Metrics() MetricsSnapshot {
	return h.metrics.Snapshot()
}

func (h *hub) Shutdown(timeout time.Duration) error {
	h.logger.DebugContext(
		h.ctx,
		"shutting down hub",
		slog.String("hub_name", h.name),
	)

	h.queueMutex.Lock()
	h.closed = true
	h.queueMutex.Unlock()
	h.cancel()

	h.waitersMutex.Lock()
	pending := h.waiters
	h.waiters = nil
	h.waitersMutex.Unlock()

	for _, w := range pending {
		w.result.close()
		h.metrics.RecordWaiter(-1)
	}

	done := make(chan struct{})
	go func() {
		h.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("hub shutdown timeout after %v", timeout)
	}
}

func (h *hub) drain() {
	defer h.inFlight.Done()

	for {
		h.queueMutex.Lock()
		if len(h.queue) == 0 {
			h.draining = false
			h.queueMutex.Unlock()
			return
		}
		next := h.queue[0]
		h.queue[0] = queued{}
		h.queue = h.queue[1:]
		h.queueMutex.Unlock()

		h.deliver(next.ctx, next.action)
	}
}

func (h *hub) deliver(ctx context.Context, action *messaging.Action) {
	h.subsMutex.RLock()
	subscribers := slices.Clone(h.subscriptions)
	h.subsMutex.RUnlock()

	delivered := 0
	for _, sub := range subscribers {
		if !sub.matches(action.Type) {
			continue
		}

		if err := sub.Handler(ctx, action); err != nil {
			h.metrics.RecordHandlerError(1)
			h.logger.ErrorContext(
				ctx,
				"action handler failed",
				slog.String("hub_name", h.name),
				slog.String("subscriber", sub.Name),
				slog.String("action_type", action.Type),
				slog.String("action_id", action.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		delivered++
	}
	h.metrics.RecordDelivered(delivered)

	resolved := h.resolveWaiters(action)

	h.logger.DebugContext(
		ctx,
		"action delivered",
		slog.String("hub_name", h.name),
		slog.String("action_type", action.Type),
		slog.Int("subscribers", delivered),
		slog.Int("waiters", resolved),
	)
}

// resolveWaiters hands action to every waiter that matches it. A resolved
// waiter is removed in the same critical section, so it can never receive
// a second action.
func (h *hub) resolveWaiters(action *messaging.Action) int {
	h.waitersMutex.Lock()
	defer h.waitersMutex.Unlock()

	resolved := 0
	remaining := h.waiters[:0]
	for _, w := range h.waiters {
		if !matchAny(w.patterns, action.Type) {
			remaining = append(remaining, w)
			continue
		}
		w.result.offer(action)
		h.metrics.RecordWaiter(-1)
		resolved++
	}
	clear(h.waiters[len(remaining):])
	h.waiters = remaining

	return resolved
}

func (h *hub) removeWaiter(w *Waiter) bool {
	h.waitersMutex.Lock()
	defer h.waitersMutex.Unlock()

	index := slices.Index(h.waiters, w)
	if index < 0 {
		return false
	}
	h.waiters = slices.Delete(h.waiters, index, index+1)
	h.metrics.RecordWaiter(-1)
	return true
}

func matchAny(patterns []string, actionType string) bool {
	for _, pattern := range patterns {
		if pattern == actionType {
			return true
		}
		if ok, err := doublestar.Match(pattern, actionType); err == nil && ok {
			return true
		}
	}
	return false
}
