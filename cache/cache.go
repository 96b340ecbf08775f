package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache is a TTL cache safe for concurrent use.
type Cache[T any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[T]
	ttl        time.Duration
	maxEntries int
	clone      func(T) T
	now        func() time.Time
}

// Option configures a Cache
type Option[T any] func(*Cache[T])

// WithClone copies values on the way in and out so callers cannot mutate cached state.
func WithClone[T any](clone func(T) T) Option[T] {
	return func(c *Cache[T]) { c.clone = clone }
}

// WithClock replaces time.Now.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Cache[T]) { c.now = now }
}

// New creates a cache. A ttl of zero or less disables caching; maxEntries below 1 means
// no bound.
func New[T any](ttl time.Duration, maxEntries int, opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		entries:    make(map[string]entry[T]),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether Set stores anything.
func (c *Cache[T]) Enabled() bool { return c.ttl > 0 }

func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().After(e.expiry) {
		c.mu.Lock()
		// re-check: a concurrent Set may have refreshed it
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return c.cloneValue(e.value), true
}

func (c *Cache[T]) Set(key string, value T) {
	if !c.Enabled() {
		return
	}
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = entry[T]{value: c.cloneValue(value), expiry: now.Add(c.ttl)}
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every entry.
func (c *Cache[T]) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]entry[T])
	c.mu.Unlock()
}

// evictLocked removes expired entries, or the one expiring soonest if none are expired.
func (c *Cache[T]) evictLocked(now time.Time) {
	var oldestKey string
	var oldest time.Time
	removed := false
	for k, e := range c.entries {
		if now.After(e.expiry) {
			delete(c.entries, k)
			removed = true
			continue
		}
		if oldestKey == "" || e.expiry.Before(oldest) {
			oldestKey, oldest = k, e.expiry
		}
	}
	if !removed && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *Cache[T]) cloneValue(value T) T {
	if c.clone == nil {
		return value
	}
	return c.clone(value)
}

// Key joins request parts and the raw body into a SHA-256 hex digest.
func Key(body []byte, parts ...string) string {
	var b bytes.Buffer
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(p)
	}
	h := sha256.New()
	h.Write(b.Bytes())
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// CloneBytes is a clone function for []byte values.
func CloneBytes(b []byte) []byte {
	return bytes.Clone(b)
}
