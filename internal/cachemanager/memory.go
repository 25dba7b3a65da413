package cachemanager

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/log"
)

// Memory implements Cache on top of go-cache. The use case ("replay",
// "records:key", ...) is attached to every log line.
type Memory[V any] struct {
	useCase string
	cache   *gocache.Cache
}

var _ Cache[int] = (*Memory[int])(nil)

// NewMemory creates an empty cache. A zero ttl passed to Set uses
// defaultExpiration; expired items are swept every cleanupInterval.
func NewMemory[V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *Memory[V] {
	return &Memory[V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *Memory[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V
	raw, found := c.cache.Get(key)
	if !found {
		return zero, false
	}
	value, ok := raw.(V)
	if !ok {
		log.Error(log.CatCache, "cached value has unexpected type", "use_case", c.useCase, "key", key)
		return zero, false
	}
	return value, true
}

func (c *Memory[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) {
	c.cache.Set(key, value, ttl)
}

func (c *Memory[V]) Remember(ctx context.Context, key string, value V, ttl time.Duration) (V, bool) {
	if err := c.cache.Add(key, value, ttl); err == nil {
		return value, true
	}
	if existing, ok := c.Get(ctx, key); ok {
		log.Debug(log.CatCache, "key already remembered", "use_case", c.useCase, "key", key)
		return existing, false
	}
	// Expired between Add and Get, or held a value of the wrong type.
	c.cache.Set(key, value, ttl)
	return value, true
}

func (c *Memory[V]) Touch(ctx context.Context, key string, ttl time.Duration) (V, bool) {
	value, ok := c.Get(ctx, key)
	if ok {
		c.cache.Set(key, value, ttl)
	}
	return value, ok
}

func (c *Memory[V]) Delete(ctx context.Context, keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

func (c *Memory[V]) Flush(ctx context.Context) {
	c.cache.Flush()
	log.Debug(log.CatCache, "cache flushed", "use_case", c.useCase)
}

// Count includes expired items that have not been swept yet.
func (c *Memory[V]) Count() int {
	return c.cache.ItemCount()
}
