package workflow

import (
	"context"

	"github.com/tailored-agentic-units/resources/naming"
	"github.com/tailored-agentic-units/resources/resource"
)

// Forms is the host's form library.
type Forms interface {
	Reset(ctx context.Context, form string)
}

// Routing is the host's navigation.
type Routing interface {
	Push(ctx context.Context, path string)
	RouteForResource(entry resource.Entry) string
}

// Notifier shows toasts.
type Notifier interface {
	ShowToast(ctx context.Context, toast Toast)
}

type Intent string

const (
	IntentSuccess Intent = "success"
	IntentDanger  Intent = "danger"
)

const (
	IconSuccess = "tick-circle"
	IconFailure = "error"
)

type Toast struct {
	Message string `json:"message" yaml:"message"`
	Intent  Intent `json:"intent" yaml:"intent"`
	Icon    string `json:"icon" yaml:"icon"`
}

type noopForms struct{}

func (noopForms) Reset(context.Context, string) {}

type entryRouting struct{}

func (entryRouting) Push(context.Context, string) {}

func (entryRouting) RouteForResource(entry resource.Entry) string {
	return naming.RouteForEntry(entry)
}

type noopNotifier struct{}

func (noopNotifier) ShowToast(context.Context, Toast) {}
