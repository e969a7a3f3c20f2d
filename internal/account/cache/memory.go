package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ovaphlow/pitchfork/service-account-go/internal/account/entity"
)

type memoryEntry struct {
	user      entity.User
	expiresAt time.Time
}

// MemoryCache is an in-process cache. Entries expire lazily on read; there
// is no capacity bound.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

var _ Cache = (*MemoryCache)(nil)

// Get returns a copy of the cached record so callers can mutate it freely.
func (c *MemoryCache) Get(_ context.Context, email string) (*entity.User, bool, error) {
	key := emailKey(email)
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// another writer may have refreshed the key meanwhile
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	u := e.user
	return &u, true, nil
}

func (c *MemoryCache) Set(_ context.Context, email string, u *entity.User, ttl time.Duration) error {
	if u == nil {
		return nil
	}
	c.mu.Lock()
	c.entries[emailKey(email)] = memoryEntry{user: *u, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, email string) error {
	c.mu.Lock()
	delete(c.entries, emailKey(email))
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
