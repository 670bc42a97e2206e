package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const janitorInterval = 2 * time.Minute

type item struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// LRUCache keeps serialized orders in process. The least recently read order
// is dropped once capacity is reached, and entries older than ttl are never
// returned.
type LRUCache struct {
	mu       sync.Mutex
	order    *list.List
	items    map[string]*list.Element
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	return &LRUCache{
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
		capacity: max(capacity, 1),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a copy of the cached bytes, so callers may decode in place.
func (c *LRUCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		observeLookup("lru", false)
		return nil, false
	}

	it := el.Value.(*item)
	if !c.now().Before(it.expiresAt) {
		c.drop(el, "expired")
		observeLookup("lru", false)
		return nil, false
	}

	c.order.MoveToFront(el)
	observeLookup("lru", true)
	return clone(it.data), true
}

func (c *LRUCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		it := el.Value.(*item)
		it.data, it.expiresAt = clone(value), expiresAt
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&item{key: key, data: clone(value), expiresAt: expiresAt})
	for c.order.Len() > c.capacity {
		c.drop(c.order.Back(), "capacity")
	}
}

func (c *LRUCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.drop(el, "deleted")
	}
}

func (c *LRUCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Start runs the janitor until ctx is done.
func (c *LRUCache) Start(ctx context.Context) error {
	go func() {
		ticker := time.NewTicker(janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.removeExpired()
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// removeExpired walks from the least recently used end.
func (c *LRUCache) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now, removed := c.now(), 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if !now.Before(el.Value.(*item).expiresAt) {
			c.drop(el, "expired")
			removed++
		}
		el = prev
	}
	return removed
}

func (c *LRUCache) drop(el *list.Element, reason string) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*item).key)
	evictions.WithLabelValues(reason).Inc()
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
