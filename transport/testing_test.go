package transport_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tailored-agentic-units/resources/hub"
	"github.com/tailored-agentic-units/resources/messaging"
)

func newHub(t *testing.T) hub.Hub {
	t.Helper()

	cfg := hub.DefaultConfig()
	cfg.Name = t.Name()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	h := hub.New(context.Background(), cfg)
	t.Cleanup(func() { _ = h.Shutdown(time.Second) })
	return h
}

// recorder collects every action delivered on a hub.
type recorder struct {
	mu      sync.Mutex
	actions []*messaging.Action
}

func record(t *testing.T, h hub.Hub, patterns ...string) *recorder {
	t.Helper()

	r := &recorder{}
	require.NoError(t, h.Subscribe("recorder", func(ctx context.Context, a *messaging.Action) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.actions = append(r.actions, a)
		return nil
	}, patterns...))
	return r
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]string, len(r.actions))
	for i, a := range r.actions {
		types[i] = a.Type
	}
	return types
}

func (r *recorder) all() []*messaging.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*messaging.Action(nil), r.actions...)
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = nil
}
