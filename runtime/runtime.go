// Package runtime composes the resource-state layer into a single session:
// one hub, one store with a reducer per configured kind, an event router
// per kind, a naming codec and selectors per kind, a form handler per
// declared form, and optionally a transport client that executes invoke
// commands.
//
// The runtime initializes from configuration via New. Functional options
// supply host collaborators and test overrides.
//
//	rt, err := runtime.New(ctx, &cfg, runtime.WithNotifier(toasts))
//	defer rt.Shutdown(5 * time.Second)
//	err = rt.Invoke(ctx, resource.KindProject, resource.RequestList, nil)
//	projects, _ := rt.Selectors(resource.KindProject)
//	entries := projects.List(rt.State())
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/tailored-agentic-units/resources/bridge"
	"github.com/tailored-agentic-units/resources/config"
	"github.com/tailored-agentic-units/resources/hub"
	"github.com/tailored-agentic-units/resources/messaging"
	"github.com/tailored-agentic-units/resources/naming"
	"github.com/tailored-agentic-units/resources/observability"
	"github.com/tailored-agentic-units/resources/resource"
	"github.com/tailored-agentic-units/resources/store"
	"github.com/tailored-agentic-units/resources/transport"
	"github.com/tailored-agentic-units/resources/workflow"
)

// Option configures a Runtime before its subsystems are created.
type Option func(*Runtime)

// WithObserver overrides the observer named by the config.
func WithObserver(o observability.Observer) Option {
	return func(r *Runtime) { r.observer = o }
}

// WithLogger overrides the hub logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) { r.logger = l }
}

// WithInvoker installs the invoker that executes invoke commands. It takes
// precedence over the connect invoker built from the transport base URL.
func WithInvoker(i transport.Invoker) Option {
	return func(r *Runtime) { r.invoker = i }
}

// WithHTTPClient sets the HTTP client of the connect invoker.
func WithHTTPClient(c connect.HTTPClient) Option {
	return func(r *Runtime) { r.httpClient = c }
}

// WithForms installs the host form store reset on successful submissions.
func WithForms(f workflow.Forms) Option {
	return func(r *Runtime) { r.forms = f }
}

// WithRouting installs the host router navigated on successful submissions.
func WithRouting(rt workflow.Routing) Option {
	return func(r *Runtime) { r.routing = rt }
}

// WithNotifier installs the host toast surface.
func WithNotifier(n workflow.Notifier) Option {
	return func(r *Runtime) { r.notifier = n }
}

// Runtime is one resource-state session.
type Runtime struct {
	id    string
	kinds []resource.Kind

	hub       hub.Hub
	store     *store.Store
	client    *transport.Client
	routers   []*bridge.Router
	handlers  map[string]*workflow.FormHandler
	codecs    map[resource.Kind]*naming.Codec
	selectors map[resource.Kind]*store.Selectors
	types     map[resource.Kind]resource.ActionTypes

	observer   observability.Observer
	logger     *slog.Logger
	invoker    transport.Invoker
	httpClient connect.HTTPClient
	forms      workflow.Forms
	routing    workflow.Routing
	notifier   workflow.Notifier

	cancel context.CancelFunc
	closed atomic.Bool
}

// New creates a Runtime from configuration. The config is validated first;
// singular kinds are normalized in the runtime's copy only.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Runtime, error) {
	c := *cfg
	c.Resources = append([]config.ResourceConfig(nil), cfg.Resources...)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	r := &Runtime{
		id:        uuid.Must(uuid.NewV7()).String(),
		handlers:  make(map[string]*workflow.FormHandler),
		codecs:    make(map[resource.Kind]*naming.Codec, len(c.Resources)),
		selectors: make(map[resource.Kind]*store.Selectors, len(c.Resources)),
		types:     make(map[resource.Kind]resource.ActionTypes, len(c.Resources)),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.observer == nil {
		name := c.Observer
		if name == "" {
			name = "slog"
		}
		observer, err := observability.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
		r.observer = observer
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	if err := r.build(runCtx, &c); err != nil {
		_ = r.Shutdown(time.Second)
		return nil, err
	}

	r.observer.OnEvent(runCtx, observability.Event{
		Type:      EventStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "runtime.New",
		Data: map[string]any{
			"runtime_id": r.id,
			"kinds":      len(r.kinds),
			"forms":      len(r.handlers),
			"transport":  r.client != nil,
		},
	})

	return r, nil
}

func (r *Runtime) build(ctx context.Context, c *config.Config) error {
	hubCfg := c.Hub
	if r.logger != nil {
		hubCfg.Logger = r.logger
	}
	if hubCfg.Logger == nil {
		hubCfg.Logger = slog.Default()
	}
	r.hub = hub.New(ctx, hubCfg)

	reducers := make([]store.Reducer, 0, len(c.Resources))
	for _, rc := range c.Resources {
		codec, err := naming.New(rc.Template)
		if err != nil {
			return fmt.Errorf("failed to create naming codec for %s: %w", rc.Kind, err)
		}

		types := resource.BuildActionTypes(rc.Kind)
		r.kinds = append(r.kinds, rc.Kind)
		r.codecs[rc.Kind] = codec
		r.types[rc.Kind] = types
		r.selectors[rc.Kind] = store.NewSelectors(rc.Kind)
		reducers = append(reducers, store.NewReducer(rc.Kind, types))
	}

	s, err := store.New(r.hub, r.observer, reducers...)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	r.store = s

	for _, rc := range c.Resources {
		router, err := bridge.NewRouter(r.hub, rc.Kind, r.types[rc.Kind], r.observer)
		if err != nil {
			return fmt.Errorf("failed to create router for %s: %w", rc.Kind, err)
		}
		r.routers = append(r.routers, router)

		if rc.Form == "" {
			continue
		}
		handler := workflow.NewFormHandler(rc.Form, rc.Kind, r.hub, r.formOptions(rc.Kind)...)
		if err := handler.Register(ctx); err != nil {
			return fmt.Errorf("failed to register form %q: %w", rc.Form, err)
		}
		r.handlers[rc.Form] = handler
	}

	invoker := r.invoker
	if invoker == nil && c.Transport.BaseURL != "" {
		httpClient := r.httpClient
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		invoker = transport.NewConnectInvoker(httpClient, c.Transport.BaseURL, transport.ServiceMap(Services(c)))
	}

	if invoker != nil {
		client, err := transport.NewClient(ctx, r.hub, invoker, c.Transport, r.observer)
		if err != nil {
			return fmt.Errorf("failed to create transport client: %w", err)
		}
		r.client = client
	}

	return nil
}

func (r *Runtime) formOptions(kind resource.Kind) []workflow.Option {
	opts := []workflow.Option{
		workflow.WithObserver(r.observer),
		workflow.WithActionTypes(r.types[kind]),
	}
	if r.forms != nil {
		opts = append(opts, workflow.WithForms(r.forms))
	}
	if r.routing != nil {
		opts = append(opts, workflow.WithRouting(r.routing))
	}
	if r.notifier != nil {
		opts = append(opts, workflow.WithNotifier(r.notifier))
	}
	return opts
}

// Services returns the method-to-service table of every configured
// resource that names a service.
func Services(c *config.Config) map[string]string {
	services := make(map[string]string)
	for _, rc := range c.Resources {
		if rc.Service == "" {
			continue
		}
		actions := resource.NewActions(rc.Kind)
		for _, request := range resource.RequestKinds() {
			method, err := actions.Method(request)
			if err != nil {
				continue
			}
			services[method] = rc.Service
		}
	}
	return services
}

// ID returns the session identifier.
func (r *Runtime) ID() string {
	return r.id
}

// Hub returns the session hub.
func (r *Runtime) Hub() hub.Hub {
	return r.hub
}

// Kinds returns the managed kinds in configuration order.
func (r *Runtime) Kinds() []resource.Kind {
	return append([]resource.Kind(nil), r.kinds...)
}

// State returns the current root snapshot.
func (r *Runtime) State() *store.Root {
	return r.store.State()
}

// Store returns the session store.
func (r *Runtime) Store() *store.Store {
	return r.store
}

func (r *Runtime) Selectors(kind resource.Kind) (*store.Selectors, error) {
	s, ok := r.selectors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnmanagedKind, kind)
	}
	return s, nil
}

func (r *Runtime) Codec(kind resource.Kind) (*naming.Codec, error) {
	c, ok := r.codecs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnmanagedKind, kind)
	}
	return c, nil
}

func (r *Runtime) Types(kind resource.Kind) (resource.ActionTypes, error) {
	t, ok := r.types[kind]
	if !ok {
		return resource.ActionTypes{}, fmt.Errorf("%w: %s", ErrUnmanagedKind, kind)
	}
	return t, nil
}

func (r *Runtime) Actions(kind resource.Kind) (resource.Actions, error) {
	if _, ok := r.types[kind]; !ok {
		return resource.Actions{}, fmt.Errorf("%w: %s", ErrUnmanagedKind, kind)
	}
	return resource.NewActions(kind), nil
}

// Form returns the handler of a declared form.
func (r *Runtime) Form(name string) (*workflow.FormHandler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownForm, name)
	}
	return h, nil
}

// Dispatch sends action through the session hub.
func (r *Runtime) Dispatch(ctx context.Context, action *messaging.Action) error {
	return r.hub.Dispatch(ctx, action)
}

// Invoke dispatches the invoke command of request on kind.
func (r *Runtime) Invoke(ctx context.Context, kind resource.Kind, request resource.RequestKind, data map[string]any) error {
	actions, err := r.Actions(kind)
	if err != nil {
		return err
	}
	command, err := actions.Invoke(request, data)
	if err != nil {
		return err
	}
	return r.hub.Dispatch(ctx, command)
}

// Submit dispatches a form submission. The outcome is reported through
// the submission's Resolve and Reject callbacks.
func (r *Runtime) Submit(ctx context.Context, sub workflow.Submission) error {
	if _, ok := r.handlers[sub.Form]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownForm, sub.Form)
	}
	return r.hub.Dispatch(ctx, workflow.SubmitAction(sub))
}

// Shutdown cancels pending submissions and in-flight calls, detaches every
// subscriber and shuts the hub down within timeout. Subsequent calls are
// no-ops.
func (r *Runtime) Shutdown(timeout time.Duration) error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error

	for _, h := range r.handlers {
		errs = append(errs, h.Close())
	}
	if r.client != nil {
		errs = append(errs, r.client.Close())
	}
	for _, router := range r.routers {
		errs = append(errs, router.Close())
	}
	if r.store != nil {
		errs = append(errs, r.store.Close())
	}
	if r.hub != nil {
		errs = append(errs, r.hub.Shutdown(timeout))
	}
	if r.cancel != nil {
		r.cancel()
	}

	err := errors.Join(errs...)

	if r.observer != nil {
		r.observer.OnEvent(context.Background(), observability.Event{
			Type:      EventShutdown,
			Level:     observability.LevelInfo,
			Timestamp: time.Now(),
			Source:    "runtime.Shutdown",
			Data: map[string]any{
				"runtime_id": r.id,
				"error":      err != nil,
			},
		})
	}

	return err
}
