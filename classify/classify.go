// Package classify derives request kind, resource kind and lifecycle status
// from RPC method names and lifecycle actions.
//
// Method names are tokenized by snake-casing them, so "ListProjects" reads
// as the tokens "list" and "projects": the first token names the request,
// the last names the resource.
package classify

import (
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/tailored-agentic-units/resources/messaging"
	"github.com/tailored-agentic-units/resources/resource"
	"github.com/tailored-agentic-units/resources/transport"
)

func tokens(method string) []string {
	return strings.Split(strings.ToLower(strcase.ToSnake(method)), "_")
}

// RequestKindFromMethod classifies the request of method by its first
// token. "Delete" methods are destroy requests.
func RequestKindFromMethod(method string) (resource.RequestKind, bool) {
	token := tokens(method)[0]
	if token == "" {
		return "", false
	}
	if token == "delete" {
		return resource.RequestDestroy, true
	}

	request := resource.RequestKind(strings.ToUpper(token))
	if !request.Valid() {
		return "", false
	}
	return request, true
}

// ResourceKindFromMethod classifies the resource of method by its last
// token, accepting either its singular or plural form. Registered kinds
// are tried in registration order.
func ResourceKindFromMethod(method string) (resource.Kind, bool) {
	t := tokens(method)
	token := t[len(t)-1]
	if token == "" {
		return "", false
	}

	plural := resource.Plural(token)
	singular := resource.Singular(token)

	for _, kind := range resource.Kinds() {
		if kind.Plural() == plural || kind.Plural() == singular {
			return kind, true
		}
	}
	return "", false
}

// StatusFromAction returns the lifecycle status of action. Transport
// lifecycle actions are classified by their payload; any other action,
// including a transport type carrying a foreign payload, by the status
// suffix of its type.
func StatusFromAction(action *messaging.Action) (resource.Status, bool) {
	if action == nil {
		return "", false
	}

	if event, ok := transport.EventOf(action); ok {
		switch event.(type) {
		case transport.Invoked:
			return resource.StatusRequested, true
		case transport.Succeeded:
			return resource.StatusSucceeded, true
		case transport.Failed:
			return resource.StatusFailed, true
		default:
			return "", false
		}
	}

	for _, status := range resource.Statuses() {
		if strings.HasSuffix(action.Type, string(status)) {
			return status, true
		}
	}
	return "", false
}

// MethodFromAction returns the method a lifecycle action reports on.
// Requested actions carry it on the payload; succeeded and failed actions
// on the request they echo.
func MethodFromAction(action *messaging.Action) (string, bool) {
	status, ok := StatusFromAction(action)
	if !ok {
		return "", false
	}

	event, ok := transport.AsEvent(action.Payload)
	if !ok {
		return "", false
	}

	var method string
	switch e := event.(type) {
	case transport.Invoked:
		if status == resource.StatusRequested {
			method = e.Method
		}
	case transport.Call:
		if status == resource.StatusRequested {
			method = e.Method
		}
	case transport.Succeeded:
		if status == resource.StatusSucceeded {
			method = e.Request.Method
		}
	case transport.Failed:
		if status == resource.StatusFailed {
			method = e.Request.Method
		}
	}

	return method, method != ""
}

// RequestKindFromAction returns the request kind of a lifecycle action.
func RequestKindFromAction(action *messaging.Action) (resource.RequestKind, bool) {
	method, ok := MethodFromAction(action)
	if !ok {
		return "", false
	}
	return RequestKindFromMethod(method)
}

// IsEmptyResponse reports whether a succeeded call returned nothing worth
// storing: no data at all, or, for list and get calls, an empty first
// value. The first value is the one under the lexically smallest key.
func IsEmptyResponse(response transport.Succeeded) bool {
	if len(response.Data) == 0 {
		return true
	}

	request, ok := RequestKindFromMethod(response.Request.Method)
	if !ok || (request != resource.RequestList && request != resource.RequestGet) {
		return false
	}

	first := slices.Min(slices.Collect(maps.Keys(response.Data)))
	return isEmpty(response.Data[first])
}

// isEmpty reports whether v is nil or a zero-length string or collection.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
