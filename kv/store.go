// Package kv provides narrow key-value persistence adapters. Each Store is
// scoped to one execution context; the page-context and extension-context
// stores never share keys.
package kv

// Store is a synchronous, string-keyed persistent store. Implementations
// absorb underlying storage failures: Get reports a miss, Set and Remove are
// fire-and-forget. Callers never see a storage error outside Close.
type Store interface {
	// Get returns the stored value for key, or ("", false) if the key is
	// absent or the underlying store failed.
	Get(key string) (string, bool)

	// Set stores value under key. Write failures are logged, not returned.
	Set(key, value string)

	// Remove deletes key. Removing an absent key is a no-op.
	Remove(key string)

	// Close releases the underlying store.
	Close() error
}
