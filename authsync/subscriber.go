package authsync

import (
	"encoding/json"

	"knowbase-core/kv"
	"knowbase-core/metrics"
	"knowbase-core/session"
	"knowbase-core/utils"
)

// Subscriber receives published snapshots in the extension context and
// overwrites its local copy wholesale. Last write wins; there is no merging
// with prior extension-side state.
type Subscriber struct {
	store   kv.Store
	logger  *utils.Logger
	metrics *metrics.Metrics
}

// NewSubscriber creates a subscriber writing to the given extension-context
// store
func NewSubscriber(store kv.Store, logger *utils.Logger) *Subscriber {
	return &Subscriber{store: store, logger: logger}
}

// AttachMetrics enables metrics reporting
func (s *Subscriber) AttachMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Handle applies one raw transport message. Malformed messages and messages
// without the sync type tag are ignored.
func (s *Subscriber) Handle(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.logger.Warn("Ignoring malformed sync message: %v", err)
		return
	}
	if msg.Type != MessageType {
		return
	}

	s.apply(msg.Snapshot)
}

// apply replaces the three stored keys with the received values. A null
// value clears the key rather than skipping it.
func (s *Subscriber) apply(snap Snapshot) {
	setOrRemove(s.store, session.KeyAuthToken, snap.AuthToken)
	setOrRemove(s.store, session.KeyUsername, snap.Username)
	setOrRemove(s.store, session.KeyGroqAPIKey, snap.GroqAPIKey)

	s.metrics.IncSyncSnapshotsApplied()
	s.logger.Debug("Applied auth snapshot")
}

func setOrRemove(store kv.Store, key string, value *string) {
	if value == nil {
		store.Remove(key)
		return
	}
	store.Set(key, *value)
}
