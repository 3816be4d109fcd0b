package cache

import (
	"sync"
	"time"
)

const (
	// DefaultLocalTTL is how long a process-local entry stays fresh after
	// its last Set.
	DefaultLocalTTL = 15 * time.Minute

	// DefaultLocalMaxSize is the default entry limit before eviction.
	DefaultLocalMaxSize = 100
)

// Local is a bounded process-local cache keyed by string. Each entry tracks
// its last-write timestamp and an access count; when the cache is full the
// entry with the fewest accesses is evicted, ties broken by the oldest
// timestamp. This is least-frequently-used with an age tie-break, not
// strict LRU, and callers relying on eviction order should treat it as
// such.
//
// Each process has its own independent Local cache with no cross-process
// visibility; the distributed tier (Remote) bounds staleness across
// instances.
type Local[V any] struct {
	mu        sync.Mutex
	values    map[string]V
	writtenAt map[string]time.Time
	accesses  map[string]int

	ttl     time.Duration
	maxSize int
}

// LocalOption configures a Local cache.
type LocalOption func(*localConfig)

type localConfig struct {
	ttl     time.Duration
	maxSize int
}

// WithTTL overrides the entry time-to-live.
func WithTTL(d time.Duration) LocalOption {
	return func(c *localConfig) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithMaxSize overrides the entry limit.
func WithMaxSize(n int) LocalOption {
	return func(c *localConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// NewLocal creates a process-local cache with the default TTL and size
// limit unless overridden by options.
func NewLocal[V any](opts ...LocalOption) *Local[V] {
	cfg := &localConfig{
		ttl:     DefaultLocalTTL,
		maxSize: DefaultLocalMaxSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Local[V]{
		values:    make(map[string]V),
		writtenAt: make(map[string]time.Time),
		accesses:  make(map[string]int),
		ttl:       cfg.ttl,
		maxSize:   cfg.maxSize,
	}
}

// Get returns the cached value for key. An entry past its TTL is treated as
// a miss and removed immediately. A hit increments the entry's access
// count.
func (c *Local[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts, ok := c.writtenAt[key]
	if !ok || time.Since(ts) > c.ttl {
		c.remove(key)
		var zero V
		return zero, false
	}

	c.accesses[key]++
	return c.values[key], true
}

// Set stores value under key, resetting the entry's timestamp and access
// count. When the cache is at capacity one entry is evicted first.
func (c *Local[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.values) >= c.maxSize {
		c.evict()
	}

	c.values[key] = value
	c.writtenAt[key] = time.Now()
	c.accesses[key] = 1
}

// Delete removes the entry for key. Deleting an absent key is a no-op.
func (c *Local[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(key)
}

// Len returns the number of entries currently stored, including any that
// have expired but not yet been touched.
func (c *Local[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

// Clear removes all entries.
func (c *Local[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.values)
	clear(c.writtenAt)
	clear(c.accesses)
}

// remove deletes key from all three maps. Caller must hold the lock.
func (c *Local[V]) remove(key string) {
	delete(c.values, key)
	delete(c.writtenAt, key)
	delete(c.accesses, key)
}

// evict drops the entry with the fewest accesses, ties broken by the
// oldest write timestamp. Linear scan; maxSize is small. Caller must hold
// the lock.
func (c *Local[V]) evict() {
	var (
		victim    string
		minAccess = -1
		oldest    time.Time
	)

	for key, count := range c.accesses {
		ts := c.writtenAt[key]
		if minAccess == -1 || count < minAccess || (count == minAccess && ts.Before(oldest)) {
			victim = key
			minAccess = count
			oldest = ts
		}
	}

	if minAccess != -1 {
		c.remove(victim)
	}
}
