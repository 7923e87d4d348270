package kv

import "sync"

// MemoryStore is a map-backed Store for tests and in-process use. FailReads
// and FailWrites simulate a broken underlying store so degradation paths can
// be exercised.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string

	FailReads  bool
	FailWrites bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailReads {
		return "", false
	}
	value, ok := m.values[key]
	return value, ok
}

// Set stores value under key
func (m *MemoryStore) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return
	}
	m.values[key] = value
}

// Remove deletes key
func (m *MemoryStore) Remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return
	}
	delete(m.values, key)
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}

// Len returns the number of stored keys
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
