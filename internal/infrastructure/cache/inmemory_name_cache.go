package cache

import (
	"context"
	"sync"
	"time"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryNameCache implements NameCache using process-local storage.
// Suitable for single-instance deployments and testing; entries are not
// shared across processes.
type InMemoryNameCache struct {
	entries sync.Map // map[string]*nameEntry
	stopCh  chan struct{}
	once    sync.Once
}

type nameEntry struct {
	name      string
	expiresAt time.Time
}

func (e *nameEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryNameCache creates a new in-memory name cache and starts a
// background goroutine that evicts expired entries.
func NewInMemoryNameCache() *InMemoryNameCache {
	c := &InMemoryNameCache{
		stopCh: make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// Get retrieves a cached name. Expired entries count as misses.
func (c *InMemoryNameCache) Get(_ context.Context, key string) (string, bool) {
	value, ok := c.entries.Load(key)
	if !ok {
		return "", false
	}
	entry := value.(*nameEntry)
	if entry.isExpired() {
		c.entries.Delete(key)
		return "", false
	}
	return entry.name, true
}

// Set stores a name with the given TTL
func (c *InMemoryNameCache) Set(_ context.Context, key string, name string, ttl time.Duration) {
	c.entries.Store(key, &nameEntry{
		name:      name,
		expiresAt: time.Now().Add(ttl),
	})
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (c *InMemoryNameCache) Stop() {
	c.once.Do(func() {
		close(c.stopCh)
	})
}

func (c *InMemoryNameCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*nameEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

// Ensure InMemoryNameCache implements NameCache
var _ NameCache = (*InMemoryNameCache)(nil)
