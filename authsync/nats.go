package authsync

import (
	"github.com/nats-io/nats.go"
)

// NATSTransport publishes sync messages on a NATS subject. Core NATS publish
// is fire-and-forget with no delivery guarantee, which matches the transport
// contract for separate-process contexts.
type NATSTransport struct {
	conn    *nats.Conn
	subject string
}

// NewNATSTransport creates a transport publishing on the given subject
func NewNATSTransport(conn *nats.Conn, subject string) *NATSTransport {
	return &NATSTransport{conn: conn, subject: subject}
}

// Publish sends data on the subject without waiting for delivery
func (t *NATSTransport) Publish(data []byte) error {
	return t.conn.Publish(t.subject, data)
}

// ListenNATS delivers messages arriving on subject to the subscriber. The
// returned subscription should be unsubscribed on teardown.
func ListenNATS(conn *nats.Conn, subject string, sub *Subscriber) (*nats.Subscription, error) {
	return conn.Subscribe(subject, func(m *nats.Msg) {
		sub.Handle(m.Data)
	})
}
