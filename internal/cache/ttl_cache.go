// Package cache provides a thread-safe in-memory cache with per-entry expiration.
package cache

import (
	"context"
	"encoding/hex"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Key derives the cache key for a company and optional job role. Company names
// are compared case-insensitively and without surrounding whitespace.
func Key(companyName, jobRole string) string {
	keyString := strings.ToLower(strings.TrimSpace(companyName)) + ":" + strings.TrimSpace(jobRole)
	sum := blake2b.Sum256([]byte(keyString))
	return hex.EncodeToString(sum[:16])
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// TTLCache is a thread-safe cache where every entry expires ttl after it was set.
type TTLCache[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]entry[V]
	ttl  time.Duration
	now  func() time.Time
}

// New creates a new TTLCache with the given TTL duration.
func New[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		data: make(map[K]entry[V]),
		ttl:  ttl,
		now:  time.Now,
	}
}

// TTL returns the entry lifetime.
func (c *TTLCache[K, V]) TTL() time.Duration {
	return c.ttl
}

// Get retrieves a value from the cache.
// Returns the zero value and ok=false if the key is missing or expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok || c.expiredLocked(e) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value and starts its TTL.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = entry[V]{value: value, storedAt: c.now()}
}

// Delete removes a key.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, key)
}

// Len returns the number of stored entries, expired or not.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Cleanup removes expired entries and returns how many were removed.
func (c *TTLCache[K, V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.data {
		if c.expiredLocked(e) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup every interval until ctx is done.
func (c *TTLCache[K, V]) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := c.Cleanup(); n > 0 {
					log.Printf("[CACHE] Cleaned up %d expired entries", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// expiredLocked MUST be called with at least a read lock held.
func (c *TTLCache[K, V]) expiredLocked(e entry[V]) bool {
	return c.now().Sub(e.storedAt) >= c.ttl
}
