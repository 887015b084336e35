package hub

import "sync/atomic"

type MetricsSnapshot struct {
	Subscribers       int64
	Waiters           int64
	ActionsDispatched int64
	ActionsDelivered  int64
	HandlerErrors     int64
}

type Metrics struct {
	subscribers       atomic.Int64
	waiters           atomic.Int64
	actionsDispatched atomic.Int64
	actionsDelivered  atomic.Int64
	handlerErrors     atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordSubscriber(delta int) {
	m.subscribers.Add(int64(delta))
}

func (m *Metrics) RecordWaiter(delta int) {
	m.waiters.Add(int64(delta))
}

func (m *Metrics) RecordDispatched(delta int) {
	m.actionsDispatched.Add(int64(delta))
}

func (m *Metrics) RecordDelivered(delta int) {
	m.actionsDelivered.Add(int64(delta))
}

func (m *Metrics) RecordHandlerError(delta int) {
	m.handlerErrors.Add(int64(delta))
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Subscribers:       m.subscribers.Load(),
		Waiters:           m.waiters.Load(),
		ActionsDispatched: m.actionsDispatched.Load(),
		ActionsDelivered:  m.actionsDelivered.Load(),
		HandlerErrors:     m.handlerErrors.Load(),
	}
}
