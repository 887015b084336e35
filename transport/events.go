package transport

import (
	"strings"

	"github.com/tailored-agentic-units/resources/messaging"
)

// Action types of the generic transport lifecycle.
const (
	TypeInvoke      = "@ grpc / INVOKE"
	TypeInvoked     = "@ grpc / INVOKED"
	TypeSucceeded   = "@ grpc / SUCCEEDED"
	TypeFailed      = "@ grpc / FAILED"
	TypeMetadataSet = "@ grpc / METADATA_SET"
)

// Event is the closed set of transport payloads.
type Event interface {
	Type() string
	transportEvent()
}

// Call is a single RPC request: the short method name and its request data.
// It is the payload of invoke commands and is echoed back in the terminal
// events of the call.
type Call struct {
	Method string         `json:"method" yaml:"method"`
	Data   map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

func (Call) Type() string    { return TypeInvoke }
func (Call) transportEvent() {}

// Invoked reports that a call has been sent.
type Invoked struct {
	Call
}

func (Invoked) Type() string { return TypeInvoked }

// Succeeded carries the response data of a call together with the request
// that produced it.
type Succeeded struct {
	Request Call           `json:"request" yaml:"request"`
	Data    map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

func (Succeeded) Type() string    { return TypeSucceeded }
func (Succeeded) transportEvent() {}

// Failed carries the error of a call together with the request that
// produced it. Code is the connect code string ("not_found", ...).
type Failed struct {
	Request Call   `json:"request" yaml:"request"`
	Code    string `json:"code,omitempty" yaml:"code,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

func (Failed) Type() string    { return TypeFailed }
func (Failed) transportEvent() {}

func (f Failed) Error() string {
	if f.Code == "" {
		return f.Request.Method + ": " + f.Message
	}
	return f.Request.Method + ": " + f.Code + ": " + f.Message
}

// MetadataSet reports response headers of a call. It carries no lifecycle
// information.
type MetadataSet struct {
	Method   string              `json:"method" yaml:"method"`
	Metadata map[string][]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

func (MetadataSet) Type() string    { return TypeMetadataSet }
func (MetadataSet) transportEvent() {}

// AsEvent returns payload as an Event. Pointer payloads are dereferenced.
func AsEvent(payload any) (Event, bool) {
	switch p := payload.(type) {
	case Call:
		return p, true
	case *Call:
		return derefEvent(p)
	case Invoked:
		return p, true
	case *Invoked:
		return derefEvent(p)
	case Succeeded:
		return p, true
	case *Succeeded:
		return derefEvent(p)
	case Failed:
		return p, true
	case *Failed:
		return derefEvent(p)
	case MetadataSet:
		return p, true
	case *MetadataSet:
		return derefEvent(p)
	default:
		return nil, false
	}
}

func derefEvent[T Event](p *T) (Event, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

// EventOf returns the payload of a transport action. Actions whose type is
// not a transport type, or whose payload does not match it, yield false.
func EventOf(action *messaging.Action) (Event, bool) {
	if action == nil {
		return nil, false
	}

	event, ok := AsEvent(action.Payload)
	if !ok {
		return nil, false
	}
	if event.Type() != action.Type {
		return nil, false
	}
	return event, true
}

// MethodName returns the short method name of a full RPC procedure
// ("/pkg.Service/ListProjects" -> "ListProjects").
func MethodName(fullMethod string) string {
	if i := strings.LastIndex(fullMethod, "/"); i >= 0 {
		return fullMethod[i+1:]
	}
	return fullMethod
}

// InvokeAction builds an invoke command for call.
func InvokeAction(call Call) *messaging.Action {
	return messaging.NewAction(TypeInvoke, call).Build()
}

func InvokedAction(call Call, cause string) *messaging.Action {
	return messaging.NewAction(TypeInvoked, Invoked{Call: call}).
		CausedBy(cause).
		Build()
}

func SucceededAction(request Call, data map[string]any, cause string) *messaging.Action {
	return messaging.NewAction(TypeSucceeded, Succeeded{Request: request, Data: data}).
		CausedBy(cause).
		Build()
}

func FailedAction(request Call, code, message, cause string) *messaging.Action {
	return messaging.NewAction(TypeFailed, Failed{Request: request, Code: code, Message: message}).
		CausedBy(cause).
		Build()
}

func MetadataSetAction(method string, metadata map[string][]string, cause string) *messaging.Action {
	return messaging.NewAction(TypeMetadataSet, MetadataSet{Method: method, Metadata: metadata}).
		CausedBy(cause).
		Build()
}
