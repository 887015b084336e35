package transport

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/resources/messaging"
)

//go:embed eventlog.schema.json
var eventLogSchema string

var compileEventLogSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("eventlog.schema.json", strings.NewReader(eventLogSchema)); err != nil {
		return nil, fmt.Errorf("failed to add event log schema: %w", err)
	}
	return compiler.Compile("eventlog.schema.json")
})

// Record kinds of an event log.
const (
	RecordInvoke      = "invoke"
	RecordInvoked     = "invoked"
	RecordSucceeded   = "succeeded"
	RecordFailed      = "failed"
	RecordMetadataSet = "metadata_set"
)

// Record is one line of a recorded transport event log. For succeeded and
// failed records, Request holds the echoed request data of the call.
type Record struct {
	Kind     string              `json:"kind" yaml:"kind"`
	Method   string              `json:"method" yaml:"method"`
	Data     map[string]any      `json:"data,omitempty" yaml:"data,omitempty"`
	Request  map[string]any      `json:"request,omitempty" yaml:"request,omitempty"`
	Code     string              `json:"code,omitempty" yaml:"code,omitempty"`
	Message  string              `json:"message,omitempty" yaml:"message,omitempty"`
	Metadata map[string][]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DecodeLog parses a YAML or JSON event log into transport actions in log
// order. The log is validated against the event log schema before any
// record is decoded. Terminal records are linked to the most recent
// invoked record of the same method through the action cause.
func DecodeLog(data []byte) ([]*messaging.Action, error) {
	records, err := DecodeRecords(data)
	if err != nil {
		return nil, err
	}

	actions := make([]*messaging.Action, 0, len(records))
	invoked := make(map[string]string)

	for _, record := range records {
		call := Call{Method: record.Method}

		var action *messaging.Action
		switch record.Kind {
		case RecordInvoke:
			call.Data = record.Data
			action = InvokeAction(call)
		case RecordInvoked:
			call.Data = record.Data
			action = InvokedAction(call, "")
			invoked[call.Method] = action.ID
		case RecordSucceeded:
			call.Data = record.Request
			action = SucceededAction(call, record.Data, invoked[call.Method])
		case RecordFailed:
			call.Data = record.Request
			action = FailedAction(call, record.Code, record.Message, invoked[call.Method])
		case RecordMetadataSet:
			action = MetadataSetAction(call.Method, record.Metadata, invoked[call.Method])
		}

		actions = append(actions, action)
	}

	return actions, nil
}

// DecodeRecords parses and validates an event log without converting it
// to actions.
func DecodeRecords(data []byte) ([]Record, error) {
	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLog, err)
	}
	if document == nil {
		return nil, nil
	}

	// Round trip through JSON so the validator sees JSON types only.
	raw, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLog, err)
	}

	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLog, err)
	}

	schema, err := compileEventLogSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLog, err)
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLog, err)
	}
	return records, nil
}

// EncodeRecord renders action as an event log record.
func EncodeRecord(action *messaging.Action) (Record, bool) {
	event, ok := EventOf(action)
	if !ok {
		return Record{}, false
	}

	switch e := event.(type) {
	case Call:
		return Record{Kind: RecordInvoke, Method: e.Method, Data: e.Data}, true
	case Invoked:
		return Record{Kind: RecordInvoked, Method: e.Method, Data: e.Data}, true
	case Succeeded:
		return Record{Kind: RecordSucceeded, Method: e.Request.Method, Data: e.Data, Request: e.Request.Data}, true
	case Failed:
		return Record{Kind: RecordFailed, Method: e.Request.Method, Request: e.Request.Data, Code: e.Code, Message: e.Message}, true
	case MetadataSet:
		return Record{Kind: RecordMetadataSet, Method: e.Method, Metadata: e.Metadata}, true
	default:
		return Record{}, false
	}
}
