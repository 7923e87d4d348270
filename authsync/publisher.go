package authsync

import (
	"encoding/json"

	"knowbase-core/kv"
	"knowbase-core/metrics"
	"knowbase-core/utils"
)

// Publisher pushes the current page-context auth snapshot to the transport.
// Publishing is fire-and-forget: transport failures are logged and swallowed,
// never propagated to the caller.
type Publisher struct {
	store     kv.Store
	transport Transport
	logger    *utils.Logger
	metrics   *metrics.Metrics
}

// NewPublisher creates a publisher reading from the given page-context store
func NewPublisher(store kv.Store, transport Transport, logger *utils.Logger) *Publisher {
	return &Publisher{store: store, transport: transport, logger: logger}
}

// AttachMetrics enables metrics reporting
func (p *Publisher) AttachMetrics(m *metrics.Metrics) {
	p.metrics = m
}

// Publish sends the current snapshot of the watched keys
func (p *Publisher) Publish() {
	p.publishSnapshot(TakeSnapshot(p.store))
}

func (p *Publisher) publishSnapshot(snap Snapshot) {
	data, err := json.Marshal(Message{Type: MessageType, Snapshot: snap})
	if err != nil {
		p.logger.Error("Failed to encode auth snapshot: %v", err)
		return
	}

	if err := p.transport.Publish(data); err != nil {
		p.logger.Warn("Failed to publish auth snapshot: %v", err)
		return
	}

	p.metrics.IncSyncPublishes()
}
