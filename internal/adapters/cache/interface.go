package cache

import "time"

// Cache is a bounded key-value store with per-entry TTL and least-recently-
// used capacity eviction. An entry is never returned after its TTL has
// elapsed. Implementations must be safe for concurrent use.
type Cache[T any] interface {
	// Get returns the stored value and marks the entry most recently used.
	Get(key string) (T, bool)
	// Set inserts or replaces the entry. If the store is full and the key is
	// new, the least recently used entry is evicted first.
	Set(key string, data T, ttl time.Duration)
	Delete(key string)
}
