// Package cache provides the LRU/TTL memoization layer behind the report
// service. Reports are pure functions of (snapshot version, period), so a
// cached entry never goes stale within its key; the TTL only bounds memory
// held for versions that are no longer current.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// ReportCache is an LRU cache with TTL and size-based eviction.
type ReportCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type entry[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

// New creates a report cache holding at most maxSize entries for at most
// ttl each.
func New[T any](maxSize int, ttl time.Duration) *ReportCache[T] {
	return &ReportCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// Get retrieves a cached report.
func (c *ReportCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	e := elem.Value.(*entry[T])
	if time.Now().After(e.expiresAt) {
		c.remove(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return e.data, true
}

// Set stores a report, evicting the least recently used entry when the
// cache is full.
func (c *ReportCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[T]{key: key, data: data, expiresAt: time.Now().Add(c.ttl)}

	if elem, exists := c.items[key]; exists {
		elem.Value = e
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(e)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

// GetOrCompute returns the cached report for key, computing and storing
// it on a miss. Compute errors are returned without caching anything.
func (c *ReportCache[T]) GetOrCompute(key string, compute func() (T, error)) (T, error) {
	if data, ok := c.Get(key); ok {
		return data, nil
	}
	data, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, data)
	return data, nil
}

// Len returns the number of live entries.
func (c *ReportCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// CleanExpired removes all expired entries and returns how many were
// dropped. The report service runs this from a janitor goroutine.
func (c *ReportCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var toRemove []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*entry[T]).expiresAt) {
			toRemove = append(toRemove, elem)
		}
	}
	for _, elem := range toRemove {
		c.remove(elem)
	}
	return len(toRemove)
}

func (c *ReportCache[T]) remove(elem *list.Element) {
	e := elem.Value.(*entry[T])
	delete(c.items, e.key)
	c.lru.Remove(elem)
}
