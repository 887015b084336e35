package messaging

import "time"

type ActionBuilder struct {
	action *Action
}

func NewAction(actionType string, payload any) *ActionBuilder {
	return &ActionBuilder{
		action: &Action{
			ID:        generateID(),
			Type:      actionType,
			Payload:   payload,
			Timestamp: time.Now(),
		},
	}
}

func (ab *ActionBuilder) CausedBy(id string) *ActionBuilder {
	ab.action.Cause = id
	return ab
}

func (ab *ActionBuilder) Meta(meta map[string]string) *ActionBuilder {
	ab.action.Meta = meta
	return ab
}

func (ab *ActionBuilder) Build() *Action {
	return ab.action
}
