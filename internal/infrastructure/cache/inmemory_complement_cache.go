package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
	"github.com/menudash/backend/internal/domain/catalog"
)

const defaultCleanupInterval = 30 * time.Second

// cacheEntry wraps a cached value with expiration time
type cacheEntry struct {
	value     *catalog.Complement
	expiresAt time.Time
}

func (e *cacheEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemoryComplementCache caches complements in process memory.
// Entries are copied on the way in and out.
type InMemoryComplementCache struct {
	entries sync.Map // map[uuid.UUID]*cacheEntry
	ttl     time.Duration
	now     func() time.Time
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// NewInMemoryComplementCache creates a cache whose entries live for ttl.
// A background goroutine evicts expired entries until Stop is called.
func NewInMemoryComplementCache(ttl time.Duration) *InMemoryComplementCache {
	c := &InMemoryComplementCache{
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go c.cleanupLoop(defaultCleanupInterval)
	return c
}

// Get returns a copy of the cached complement
func (c *InMemoryComplementCache) Get(_ context.Context, id uuid.UUID) (*catalog.Complement, bool) {
	v, ok := c.entries.Load(id)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	entry := v.(*cacheEntry)
	if entry.isExpired(c.now()) {
		c.entries.Delete(id)
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	atomic.AddInt64(&c.hits, 1)
	return cloneComplement(entry.value), true
}

// Set stores a copy of the complement
func (c *InMemoryComplementCache) Set(_ context.Context, complement *catalog.Complement) {
	if complement == nil {
		return
	}
	c.entries.Store(complement.ID, &cacheEntry{
		value:     cloneComplement(complement),
		expiresAt: c.now().Add(c.ttl),
	})
}

// Delete drops the given complements
func (c *InMemoryComplementCache) Delete(_ context.Context, ids ...uuid.UUID) {
	for _, id := range ids {
		c.entries.Delete(id)
	}
}

// Stats returns hit and miss counts
func (c *InMemoryComplementCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (c *InMemoryComplementCache) Stop() {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
}

func (c *InMemoryComplementCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *InMemoryComplementCache) evictExpired() {
	now := c.now()
	c.entries.Range(func(key, value any) bool {
		if value.(*cacheEntry).isExpired(now) {
			c.entries.Delete(key)
		}
		return true
	})
}

// cloneComplement copies a complement without its pending events
func cloneComplement(src *catalog.Complement) *catalog.Complement {
	dst := *src
	dst.ClearDomainEvents()
	dst.Items = append([]catalog.ComplementItem(nil), src.Items...)
	dst.ProductIDs = append([]uuid.UUID(nil), src.ProductIDs...)
	return &dst
}

var _ catalogapp.ComplementCache = (*InMemoryComplementCache)(nil)
