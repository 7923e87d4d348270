// Package authsync propagates credentials from the page-context store to the
// extension-context store. The two storage scopes cannot observe each other's
// mutations, so a polling change detector publishes full snapshots over a
// one-way, best-effort transport; each message supersedes the last, which
// makes the channel self-healing without retries or sequencing.
package authsync

import (
	"encoding/json"

	"knowbase-core/kv"
	"knowbase-core/session"
)

// MessageType tags every sync message on the wire. Receivers ignore messages
// carrying any other tag.
const MessageType = "knowbase-auth-sync"

// Snapshot holds the full current values of the watched keys. A missing key
// is an explicit null, never an absent field; the receiver relies on that to
// clear its copy.
type Snapshot struct {
	AuthToken  *string `json:"authToken"`
	Username   *string `json:"username"`
	GroqAPIKey *string `json:"groqApiKey"`
}

// Message is the wire shape sent across the context boundary. Field names
// are part of the contract; changing them breaks the subscriber.
type Message struct {
	Type string `json:"type"`
	Snapshot
}

// TakeSnapshot reads the watched keys from the page-context store
func TakeSnapshot(store kv.Store) Snapshot {
	return Snapshot{
		AuthToken:  readKey(store, session.KeyAuthToken),
		Username:   readKey(store, session.KeyUsername),
		GroqAPIKey: readKey(store, session.KeyGroqAPIKey),
	}
}

// Equal compares two snapshots by value
func (s Snapshot) Equal(other Snapshot) bool {
	return ptrEqual(s.AuthToken, other.AuthToken) &&
		ptrEqual(s.Username, other.Username) &&
		ptrEqual(s.GroqAPIKey, other.GroqAPIKey)
}

// serialize renders a snapshot for value comparison by the change detector
func serialize(s Snapshot) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func readKey(store kv.Store, key string) *string {
	if value, ok := store.Get(key); ok {
		return &value
	}
	return nil
}

func ptrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
