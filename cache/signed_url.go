// Package cache provides the short-lived signed-URL cache that sits in front
// of the presign operation. It is an explicitly constructed, injectable
// component: production wires the redis-backed implementation, tests and
// redis-less deployments use the in-memory one.
package cache

import (
	"context"
	"sync"
	"time"
)

// SignedURLCache caches presigned URLs by storage key. Entries are written
// with a TTL already reduced by the safety buffer, so anything a Get returns
// is still valid server-side.
type SignedURLCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, url string, ttl time.Duration)
}

type memoryEntry struct {
	url       string
	expiresAt time.Time
}

// MemorySignedURLCache is a process-local implementation. Entries are
// immutable once inserted (overwritten wholesale) and evicted lazily on
// lookup, so a plain RWMutex-guarded map suffices.
type MemorySignedURLCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemorySignedURLCache() *MemorySignedURLCache {
	return &MemorySignedURLCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemorySignedURLCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// re-check under the write lock: a fresh Set may have raced the evict
		if current, ok := c.entries[key]; ok && c.now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", false
	}
	return entry.url, true
}

func (c *MemorySignedURLCache) Set(_ context.Context, key string, url string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{url: url, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}
