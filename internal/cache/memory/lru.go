// Package memory provides the process-wide bounded result cache: a narrow
// get/put interface over an LRU with recency tracking on every access.
package memory

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a threadsafe bounded cache. Entries are treated as immutable
// snapshots: callers must not mutate a value after Put. The zero/nil cache
// is usable and caches nothing, so a failed construction degrades to
// rebuilding on every request instead of failing requests.
type LRU[K comparable, V any] struct {
	inner *lru.Cache[K, V]
}

// New builds a cache holding at most capacity entries; exceeding it evicts
// the least-recently-used entry.
func New[K comparable, V any](capacity int) (*LRU[K, V], error) {
	inner, err := lru.New[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{inner: inner}, nil
}

// Get returns the entry for key and marks it most-recently-used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	if c == nil || c.inner == nil {
		var zero V
		return zero, false
	}
	return c.inner.Get(key)
}

// Put stores an entry and marks it most-recently-used.
func (c *LRU[K, V]) Put(key K, value V) {
	if c == nil || c.inner == nil {
		return
	}
	c.inner.Add(key, value)
}

// Len reports the current number of entries.
func (c *LRU[K, V]) Len() int {
	if c == nil || c.inner == nil {
		return 0
	}
	return c.inner.Len()
}
