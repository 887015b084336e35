package resource

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/tailored-agentic-units/resources/messaging"
	"github.com/tailored-agentic-units/resources/transport"
)

// Actions creates the invoke commands of one resource kind. Method names
// follow the RPC naming the classifier expects, so every command it creates
// is routed back to the same kind.
type Actions struct {
	kind Kind
}

func NewActions(kind Kind) Actions {
	return Actions{kind: kind}
}

func (a Actions) Kind() Kind {
	return a.kind
}

// Method returns the RPC method name of request for the kind:
// ListProjects, GetProject, CreateProject, UpdateProject, DeleteProject.
func (a Actions) Method(request RequestKind) (string, error) {
	plural := strcase.ToCamel(a.kind.Plural())
	singular := strcase.ToCamel(a.kind.Singular())

	switch request {
	case RequestList:
		return "List" + plural, nil
	case RequestGet:
		return "Get" + singular, nil
	case RequestCreate:
		return "Create" + singular, nil
	case RequestUpdate:
		return "Update" + singular, nil
	case RequestDestroy:
		return "Delete" + singular, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidRequestKind, request)
	}
}

// Invoke creates the invoke command of request carrying data.
func (a Actions) Invoke(request RequestKind, data map[string]any) (*messaging.Action, error) {
	method, err := a.Method(request)
	if err != nil {
		return nil, err
	}
	return transport.InvokeAction(transport.Call{Method: method, Data: data}), nil
}

func (a Actions) List(data map[string]any) *messaging.Action {
	return a.must(RequestList, data)
}

func (a Actions) Get(name string) *messaging.Action {
	return a.must(RequestGet, map[string]any{NameField: name})
}

// Create carries the submitted form values as request data.
func (a Actions) Create(values map[string]any) *messaging.Action {
	return a.must(RequestCreate, values)
}

func (a Actions) Update(values map[string]any) *messaging.Action {
	return a.must(RequestUpdate, values)
}

func (a Actions) Destroy(name string) *messaging.Action {
	return a.must(RequestDestroy, map[string]any{NameField: name})
}

func (a Actions) must(request RequestKind, data map[string]any) *messaging.Action {
	action, err := a.Invoke(request, data)
	if err != nil {
		panic(err)
	}
	return action
}
