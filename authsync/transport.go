package authsync

import "sync"

// Transport is a one-way, best-effort message channel from the page context
// to the extension context. Publish gives no acknowledgment and no delivery
// guarantee; a dropped message is repaired by the next published snapshot.
type Transport interface {
	Publish(data []byte) error
}

// Loopback is an in-process Transport for when both contexts share one
// process. Messages published with no handler attached are dropped silently,
// matching the no-listener behavior of a real cross-context channel.
type Loopback struct {
	mu      sync.Mutex
	handler func(data []byte)
}

// NewLoopback creates a loopback transport with no handler attached
func NewLoopback() *Loopback {
	return &Loopback{}
}

// OnMessage attaches the receiving side. A later call replaces the handler.
func (l *Loopback) OnMessage(fn func(data []byte)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = fn
}

// Publish delivers data to the attached handler, if any
func (l *Loopback) Publish(data []byte) error {
	l.mu.Lock()
	handler := l.handler
	l.mu.Unlock()

	if handler != nil {
		handler(data)
	}
	return nil
}
