// Package metrics provides Prometheus metrics for the client core
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the sync bridge and history store
type Metrics struct {
	SyncPublishesTotal        prometheus.Counter
	SyncPollTicksTotal        prometheus.Counter
	SyncSnapshotsAppliedTotal prometheus.Counter

	HistoryPersistsTotal        prometheus.Counter
	HistoryPersistFailuresTotal prometheus.Counter
}

// NewMetrics creates and registers all metrics on the default registry
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates and registers all metrics on the given registerer
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SyncPublishesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "knowbase_sync_publishes_total",
			Help: "Total number of auth snapshots published to the transport",
		}),
		SyncPollTicksTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "knowbase_sync_poll_ticks_total",
			Help: "Total number of change detector poll ticks",
		}),
		SyncSnapshotsAppliedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "knowbase_sync_snapshots_applied_total",
			Help: "Total number of auth snapshots applied by the subscriber",
		}),
		HistoryPersistsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "knowbase_history_persists_total",
			Help: "Total number of conversation history write-throughs",
		}),
		HistoryPersistFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "knowbase_history_persist_failures_total",
			Help: "Total number of failed conversation history write-throughs",
		}),
	}
}

// IncSyncPublishes increments the publish counter; nil-safe
func (m *Metrics) IncSyncPublishes() {
	if m == nil {
		return
	}
	m.SyncPublishesTotal.Inc()
}

// IncSyncPollTicks increments the poll tick counter; nil-safe
func (m *Metrics) IncSyncPollTicks() {
	if m == nil {
		return
	}
	m.SyncPollTicksTotal.Inc()
}

// IncSyncSnapshotsApplied increments the applied snapshot counter; nil-safe
func (m *Metrics) IncSyncSnapshotsApplied() {
	if m == nil {
		return
	}
	m.SyncSnapshotsAppliedTotal.Inc()
}

// IncHistoryPersists increments the persist counter; nil-safe
func (m *Metrics) IncHistoryPersists() {
	if m == nil {
		return
	}
	m.HistoryPersistsTotal.Inc()
}

// IncHistoryPersistFailures increments the persist failure counter; nil-safe
func (m *Metrics) IncHistoryPersistFailures() {
	if m == nil {
		return
	}
	m.HistoryPersistFailuresTotal.Inc()
}
