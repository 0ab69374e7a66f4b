package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache is a typed wrapper around a ristretto cache.
type Cache[T any] struct {
	impl      *ristretto.Cache[string, T]
	cacheType string
}

// New creates a new cache with the given cost function and cache type
func New[T any](costFunc func(T) int64, cacheType string) (*Cache[T], error) {
	impl, err := ristretto.NewCache(&ristretto.Config[string, T]{
		NumCounters: 1e5,     // number of keys to track frequency of
		MaxCost:     1 << 22, // maximum cost of cache (4MB)
		BufferItems: 64,      // number of keys per Get buffer
		Metrics:     true,
		Cost:        costFunc,
	})
	if err != nil {
		return nil, err
	}

	return &Cache[T]{
		impl:      impl,
		cacheType: cacheType,
	}, nil
}

// Get retrieves a value from the cache
func (c *Cache[T]) Get(key string) (T, bool) {
	return c.impl.Get(key)
}

// Set stores a value in the cache with a default TTL of 1 hour
func (c *Cache[T]) Set(key string, value T, cost int64) bool {
	return c.SetWithTTL(key, value, cost, time.Hour)
}

// SetWithTTL stores a value in the cache with a specific TTL
func (c *Cache[T]) SetWithTTL(key string, value T, cost int64, ttl time.Duration) bool {
	return c.impl.SetWithTTL(key, value, cost, ttl)
}

// Clear removes all items from the cache
func (c *Cache[T]) Clear() {
	c.impl.Clear()
}

// Wait waits for the cache to finish processing
func (c *Cache[T]) Wait() {
	c.impl.Wait()
}

// GetItemCount returns the current number of items in the cache
func (c *Cache[T]) GetItemCount() int64 {
	return int64(c.impl.Metrics.KeysAdded() - c.impl.Metrics.KeysEvicted())
}

// Stats returns cache statistics for monitoring
func (c *Cache[T]) Stats() map[string]interface{} {
	metrics := c.impl.Metrics

	hitRate := 0.0
	totalRequests := metrics.Hits() + metrics.Misses()
	if totalRequests > 0 {
		hitRate = float64(metrics.Hits()) / float64(totalRequests) * 100
	}

	return map[string]interface{}{
		"cache_type":     c.cacheType,
		"hits":           metrics.Hits(),
		"misses":         metrics.Misses(),
		"sets":           metrics.KeysAdded(),
		"total_requests": totalRequests,
		"hit_rate":       hitRate,
		"memory_used":    metrics.CostAdded() - metrics.CostEvicted(),
		"current_items":  c.GetItemCount(),
	}
}
