package observability

import (
	"context"
	"maps"
	"slices"

	"go.uber.org/zap"
)

// ZapObserver emits events to a zap.Logger. It mirrors SlogObserver: the
// event type is the message, the source and Data keys become fields.
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver creates a ZapObserver. A nil logger writes to zap.L() as
// of each event.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	return &ZapObserver{logger: logger}
}

func (o *ZapObserver) OnEvent(ctx context.Context, event Event) {
	logger := o.logger
	if logger == nil {
		logger = zap.L()
	}

	ce := logger.Check(event.Level.ZapLevel(), string(event.Type))
	if ce == nil {
		return
	}

	fields := make([]zap.Field, 0, len(event.Data)+2)
	fields = append(fields, zap.String("source", event.Source))
	if !event.Timestamp.IsZero() {
		fields = append(fields, zap.Time("event_time", event.Timestamp))
	}
	for _, k := range slices.Sorted(maps.Keys(event.Data)) {
		fields = append(fields, zap.Any(k, event.Data[k]))
	}

	ce.Write(fields...)
}
