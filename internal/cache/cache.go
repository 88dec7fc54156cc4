package cache

import (
	"sync"
	"time"
)

// Cache holds the latest serialized fleet snapshot in memory so /api/data
// never waits on the backend.
type Cache struct {
	mu        sync.RWMutex
	data      []byte
	updatedAt time.Time
}

func New() *Cache {
	return &Cache{}
}

// Set replaces the snapshot. updatedAt is the time the snapshot was built,
// which may predate the call when it is restored from the store.
func (c *Cache) Set(data []byte, updatedAt time.Time) {
	buf := make([]byte, len(data))
	copy(buf, data)

	c.mu.Lock()
	c.data = buf
	c.updatedAt = updatedAt
	c.mu.Unlock()
}

// Get returns a copy of the snapshot, or nil if nothing is cached yet.
func (c *Cache) Get() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil {
		return nil
	}
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

// UpdatedAt returns the build time of the cached snapshot; zero when empty.
func (c *Cache) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updatedAt
}

// Age reports how old the snapshot is relative to now.
func (c *Cache) Age(now time.Time) (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data == nil {
		return 0, false
	}
	return now.Sub(c.updatedAt), true
}
