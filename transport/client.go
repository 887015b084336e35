package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/grpc/status"

	"github.com/tailored-agentic-units/resources/hub"
	"github.com/tailored-agentic-units/resources/messaging"
	"github.com/tailored-agentic-units/resources/observability"
)

// ClientSubscriber is the hub subscription name of the transport client.
const ClientSubscriber = "transport"

// Invoker executes one RPC call and returns its response data.
type Invoker interface {
	Invoke(ctx context.Context, call Call) (map[string]any, error)
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, call Call) (map[string]any, error)

func (f InvokerFunc) Invoke(ctx context.Context, call Call) (map[string]any, error) {
	return f(ctx, call)
}

// Client executes invoke commands dispatched on the hub and reports every
// call as Invoked followed by exactly one of Succeeded or Failed.
type Client struct {
	hub      hub.Hub
	invoker  Invoker
	observer observability.Observer
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	calls  sync.WaitGroup
	closed atomic.Bool
}

// NewClient subscribes a client to invoke commands on h.
func NewClient(ctx context.Context, h hub.Hub, invoker Invoker, cfg Config, observer observability.Observer) (*Client, error) {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}

	clientCtx, cancel := context.WithCancel(ctx)
	c := &Client{
		hub:      h,
		invoker:  invoker,
		observer: observer,
		timeout:  cfg.Timeout,
		ctx:      clientCtx,
		cancel:   cancel,
	}

	if err := h.Subscribe(ClientSubscriber, c.handle, TypeInvoke); err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe transport client: %w", err)
	}
	return c, nil
}

func (c *Client) handle(ctx context.Context, action *messaging.Action) error {
	call, ok := messaging.PayloadAs[Call](action)
	if !ok || call.Method == "" {
		return fmt.Errorf("%w: action %s", ErrInvalidCall, action.ID)
	}
	if c.closed.Load() {
		return ErrClientClosed
	}

	c.calls.Add(1)
	go c.execute(action.ID, call)
	return nil
}

func (c *Client) execute(cause string, call Call) {
	defer c.calls.Done()

	ctx := c.ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	invoked := InvokedAction(call, cause)
	if err := c.hub.Dispatch(ctx, invoked); err != nil {
		return
	}

	c.observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventTransportInvoke,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "transport.client",
		Data: map[string]any{
			"method": call.Method,
		},
	})

	data, err := c.invoker.Invoke(ctx, call)

	var result *messaging.Action
	if err != nil {
		result = FailedAction(call, ErrorCode(err), errorMessage(err), invoked.ID)
	} else {
		result = SucceededAction(call, data, invoked.ID)
	}

	c.observer.OnEvent(ctx, observability.Event{
		Type:      observability.EventTransportComplete,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "transport.client",
		Data: map[string]any{
			"method":  call.Method,
			"outcome": result.Type,
		},
	})

	// The terminal event is dispatched even when ctx expired so that
	// waiters see the failure.
	_ = c.hub.Dispatch(context.WithoutCancel(ctx), result)
}

// Close unsubscribes the client, cancels in-flight calls and waits for
// their terminal events to be dispatched.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	err := c.hub.Unsubscribe(ClientSubscriber)
	c.cancel()
	c.calls.Wait()

	if errors.Is(err, hub.ErrClosed) || errors.Is(err, hub.ErrNotSubscribed) {
		return nil
	}
	return err
}

// ErrorCode returns the connect code string of err. gRPC status errors are
// mapped onto the same code space; context errors map to canceled and
// deadline_exceeded.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}

	if st, ok := status.FromError(err); ok {
		return connect.Code(st.Code()).String()
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded.String()
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled.String()
	default:
		return connect.CodeUnknown.String()
	}
}
