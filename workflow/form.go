package workflow

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tailored-agentic-units/resources/hub"
	"github.com/tailored-agentic-units/resources/messaging"
	"github.com/tailored-agentic-units/resources/observability"
	"github.com/tailored-agentic-units/resources/resource"
	"github.com/tailored-agentic-units/resources/transport"
)

// TypeSubmit is the action type of form submissions.
const TypeSubmit = "@ form / SUBMIT"

// Submission is a submitted form. Values holds the form state; the entry
// being edited sits under the kind's singular noun.
type Submission struct {
	Form    string
	Values  map[string]any
	Resolve func()
	Reject  func(error)
}

// IsNew reports whether the submission creates an entry: the entry under
// singular carries no name field.
func (s Submission) IsNew(singular string) bool {
	entry, ok := resource.EntryFrom(s.Values[singular])
	return !ok || !entry.HasName()
}

func (s Submission) resolve() {
	if s.Resolve != nil {
		s.Resolve()
	}
}

func (s Submission) reject(err error) {
	if s.Reject != nil {
		s.Reject(err)
	}
}

// SubmitAction creates the submit action of sub.
func SubmitAction(sub Submission) *messaging.Action {
	return messaging.NewAction(TypeSubmit, sub).Build()
}

// Outcome is how a submission ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

type phase int32

const (
	phaseAwaiting phase = iota
	phaseResolved
	phaseCancelled
)

// submission tracks one in-flight submission through its phases.
type submission struct {
	Submission
	request resource.RequestKind
	phase   atomic.Int32
}

// settle moves the submission out of awaiting. It reports false when the
// submission has already settled.
func (s *submission) settle(to phase) bool {
	return s.phase.CompareAndSwap(int32(phaseAwaiting), int32(to))
}

// FormHandler runs the submissions of one form for one resource kind.
type FormHandler struct {
	form    string
	kind    resource.Kind
	types   resource.ActionTypes
	actions resource.Actions
	hub     hub.Hub

	forms    Forms
	routing  Routing
	notifier Notifier
	observer observability.Observer

	subscriber string
	pending    sync.WaitGroup
	inFlight   atomic.Int64
	cancel     context.CancelFunc
	ctx        context.Context
	mu         sync.Mutex
}

type Option func(*FormHandler)

func WithForms(forms Forms) Option {
	return func(f *FormHandler) {
		f.forms = forms
	}
}

func WithRouting(routing Routing) Option {
	return func(f *FormHandler) {
		f.routing = routing
	}
}

func WithNotifier(notifier Notifier) Option {
	return func(f *FormHandler) {
		f.notifier = notifier
	}
}

func WithObserver(observer observability.Observer) Option {
	return func(f *FormHandler) {
		f.observer = observer
	}
}

// WithActionTypes overrides the action types the handler awaits. By default
// they are built from the kind.
func WithActionTypes(types resource.ActionTypes) Option {
	return func(f *FormHandler) {
		f.types = types
	}
}

func NewFormHandler(form string, kind resource.Kind, h hub.Hub, opts ...Option) *FormHandler {
	f := &FormHandler{
		form:       form,
		kind:       kind,
		types:      resource.BuildActionTypes(kind),
		actions:    resource.NewActions(kind),
		hub:        h,
		forms:      noopForms{},
		routing:    entryRouting{},
		notifier:   noopNotifier{},
		observer:   observability.NoOpObserver{},
		subscriber: "form:" + form,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *FormHandler) Form() string {
	return f.form
}

func (f *FormHandler) Kind() resource.Kind {
	return f.kind
}

// Pending returns the number of submissions awaiting their outcome.
func (f *FormHandler) Pending() int {
	return int(f.inFlight.Load())
}

// HandleSubmit issues the create or update command of sub and blocks until
// its outcome is known or ctx is done. The returned error is the error
// passed to Reject, if any.
func (f *FormHandler) HandleSubmit(ctx context.Context, sub Submission) (Outcome, error) {
	s := &submission{Submission: sub, request: resource.RequestUpdate}
	if sub.IsNew(f.kind.Singular()) {
		s.request = resource.RequestCreate
	}

	f.inFlight.Add(1)
	defer f.inFlight.Add(-1)

	f.emit(ctx, observability.EventFormSubmit, observability.LevelVerbose, map[string]any{
		"request": string(s.request),
	})

	// The waiter exists before the command is dispatched, so a transport
	// that completes synchronously cannot outrun it.
	waiter, err := f.hub.Await(
		f.types.For(s.request, resource.StatusSucceeded),
		f.types.For(s.request, resource.StatusFailed),
	)
	if err != nil {
		return f.cancelled(ctx, s, fmt.Errorf("await outcome: %w", err))
	}

	command, err := f.actions.Invoke(s.request, sub.Values)
	if err != nil {
		waiter.Cancel()
		return f.cancelled(ctx, s, err)
	}
	if err := f.hub.Dispatch(ctx, command); err != nil {
		waiter.Cancel()
		return f.cancelled(ctx, s, fmt.Errorf("dispatch %s: %w", command.Type, err))
	}

	outcome, err := waiter.Wait(ctx)
	if err != nil {
		return f.cancelled(ctx, s, err)
	}

	if outcome.Type == f.types.For(s.request, resource.StatusSucceeded) {
		return f.succeeded(ctx, s, outcome)
	}
	return f.failed(ctx, s, outcome)
}

func (f *FormHandler) succeeded(ctx context.Context, s *submission, action *messaging.Action) (Outcome, error) {
	if !s.settle(phaseResolved) {
		return OutcomeCancelled, nil
	}

	var entry resource.Entry
	if response, ok := messaging.PayloadAs[transport.Succeeded](action); ok {
		entry = resource.Entry(response.Data)
	}

	s.resolve()
	f.forms.Reset(ctx, f.form)
	f.routing.Push(ctx, f.routing.RouteForResource(entry))
	f.notifier.ShowToast(ctx, Toast{
		Message: fmt.Sprintf("%s %s", f.kind.DisplayName(), pastTense(s.request)),
		Intent:  IntentSuccess,
		Icon:    IconSuccess,
	})

	f.emit(ctx, observability.EventFormResolved, observability.LevelInfo, map[string]any{
		"request": string(s.request),
		"outcome": action.Type,
	})
	return OutcomeSucceeded, nil
}

func (f *FormHandler) failed(ctx context.Context, s *submission, action *messaging.Action) (Outcome, error) {
	if !s.settle(phaseResolved) {
		return OutcomeCancelled, nil
	}

	err := &SubmissionError{
		Form:    f.form,
		Kind:    f.kind,
		Request: s.request,
	}
	if response, ok := messaging.PayloadAs[transport.Failed](action); ok {
		err.Code = response.Code
		err.Message = response.Message
	}

	s.reject(err)
	f.notifier.ShowToast(ctx, Toast{
		Message: fmt.Sprintf("%s %s failed", f.kind.DisplayName(), verb(s.request)),
		Intent:  IntentDanger,
		Icon:    IconFailure,
	})

	f.emit(ctx, observability.EventFormRejected, observability.LevelWarning, map[string]any{
		"request": string(s.request),
		"code":    err.Code,
	})
	return OutcomeFailed, err
}

func (f *FormHandler) cancelled(ctx context.Context, s *submission, cause error) (Outcome, error) {
	if !s.settle(phaseCancelled) {
		return OutcomeCancelled, nil
	}

	err := &SubmissionError{
		Form:    f.form,
		Kind:    f.kind,
		Request: s.request,
		Err:     cause,
	}
	s.reject(err)

	f.emit(ctx, observability.EventFormCancelled, observability.LevelInfo, map[string]any{
		"request": string(s.request),
		"error":   cause.Error(),
	})
	return OutcomeCancelled, err
}

func (f *FormHandler) emit(ctx context.Context, eventType observability.EventType, level observability.Level, data map[string]any) {
	data["form"] = f.form
	data["kind"] = f.kind.String()

	f.observer.OnEvent(ctx, observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    f.subscriber,
		Data:      data,
	})
}

// Register subscribes the handler to submit actions for its form. Each
// submission runs in its own goroutine bounded by ctx; Close cancels them.
func (f *FormHandler) Register(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		return fmt.Errorf("%w: %s", hub.ErrAlreadySubscribed, f.subscriber)
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := f.hub.Subscribe(f.subscriber, f.handle, TypeSubmit); err != nil {
		cancel()
		return err
	}

	f.ctx = runCtx
	f.cancel = cancel
	return nil
}

func (f *FormHandler) handle(ctx context.Context, action *messaging.Action) error {
	sub, ok := messaging.PayloadAs[Submission](action)
	if !ok || sub.Form != f.form {
		return nil
	}

	f.mu.Lock()
	runCtx := f.ctx
	f.mu.Unlock()
	if runCtx == nil || runCtx.Err() != nil {
		return nil
	}

	f.pending.Add(1)
	go func() {
		defer f.pending.Done()
		_, _ = f.HandleSubmit(runCtx, sub)
	}()
	return nil
}

// Close unsubscribes the handler and cancels its in-flight submissions,
// which are rejected without a toast.
func (f *FormHandler) Close() error {
	f.mu.Lock()
	cancel := f.cancel
	f.mu.Unlock()

	if cancel == nil {
		return nil
	}

	err := f.hub.Unsubscribe(f.subscriber)
	cancel()
	f.pending.Wait()

	f.mu.Lock()
	f.cancel = nil
	f.ctx = nil
	f.mu.Unlock()

	return err
}

func verb(request resource.RequestKind) string {
	if request == resource.RequestCreate {
		return "create"
	}
	return "update"
}

func pastTense(request resource.RequestKind) string {
	return verb(request) + "d"
}
