package messaging_test

import (
	"testing"

	"github.com/tailored-agentic-units/resources/messaging"
)

type payload struct {
	Name string
}

func TestAction_Builder(t *testing.T) {
	action := messaging.NewAction("@ projects / LIST_SUCCEEDED", payload{Name: "p"}).Build()

	if action.Type != "@ projects / LIST_SUCCEEDED" {
		t.Errorf("Type = %v, want %v", action.Type, "@ projects / LIST_SUCCEEDED")
	}
	if action.ID == "" {
		t.Error("ID should not be empty")
	}
	if action.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if action.Cause != "" {
		t.Errorf("Cause = %q, want empty", action.Cause)
	}
}

func TestAction_FluentAPI(t *testing.T) {
	meta := map[string]string{"form": "project"}

	action := messaging.NewAction("t", nil).
		CausedBy("original-id").
		Meta(meta).
		Build()

	if action.Cause != "original-id" {
		t.Errorf("Cause = %v, want %v", action.Cause, "original-id")
	}
	if action.Meta["form"] != "project" {
		t.Errorf("Meta[form] = %v, want %v", action.Meta["form"], "project")
	}
}

func TestAction_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := messaging.NewAction("t", nil).Build().ID
		if seen[id] {
			t.Fatalf("duplicate action ID %s", id)
		}
		seen[id] = true
	}
}

func TestAction_Is(t *testing.T) {
	action := messaging.NewAction("b", nil).Build()

	tests := []struct {
		name  string
		types []string
		want  bool
	}{
		{name: "single match", types: []string{"b"}, want: true},
		{name: "one of many", types: []string{"a", "b", "c"}, want: true},
		{name: "no match", types: []string{"a", "c"}, want: false},
		{name: "empty", types: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := action.Is(tt.types...); got != tt.want {
				t.Errorf("Is(%v) = %v, want %v", tt.types, got, tt.want)
			}
		})
	}
}

func TestAction_Clone(t *testing.T) {
	original := messaging.NewAction("t", nil).Meta(map[string]string{"k": "v"}).Build()

	clone := original.Clone()
	clone.Meta["k"] = "changed"

	if original.Meta["k"] != "v" {
		t.Errorf("original Meta[k] = %v, want %v", original.Meta["k"], "v")
	}
	if clone.ID != original.ID {
		t.Errorf("clone ID = %v, want %v", clone.ID, original.ID)
	}
}

func TestPayloadAs(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    payload
		wantOK  bool
	}{
		{name: "value", payload: payload{Name: "a"}, want: payload{Name: "a"}, wantOK: true},
		{name: "pointer", payload: &payload{Name: "b"}, want: payload{Name: "b"}, wantOK: true},
		{name: "nil pointer", payload: (*payload)(nil), wantOK: false},
		{name: "other type", payload: "text", wantOK: false},
		{name: "nil", payload: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := messaging.NewAction("t", tt.payload).Build()
			got, ok := messaging.PayloadAs[payload](action)
			if ok != tt.wantOK {
				t.Fatalf("PayloadAs() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("PayloadAs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAction_String(t *testing.T) {
	action := messaging.NewAction("@ sites / GET_FAILED", nil).CausedBy("c").Build()
	want := "Action{ID: " + action.ID + ", Type: @ sites / GET_FAILED, Cause: c}"
	if got := action.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
