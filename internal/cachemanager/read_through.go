package cachemanager

import (
	"context"
	"time"
)

// ReadThrough serves reads from a Cache and falls back to a loader on a miss.
// A hit restarts the entry's TTL. Loader errors are returned and never cached.
type ReadThrough[V any] struct {
	cache    Cache[V]
	ttl      time.Duration
	disabled bool
}

// NewReadThrough wraps cache. With disabled set, every read goes to the loader
// and writes are ignored.
func NewReadThrough[V any](cache Cache[V], ttl time.Duration, disabled bool) *ReadThrough[V] {
	return &ReadThrough[V]{cache: cache, ttl: ttl, disabled: disabled}
}

// Get returns the cached value for key or the loaded one.
func (r *ReadThrough[V]) Get(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if r.disabled {
		return load(ctx)
	}
	if value, ok := r.cache.Touch(ctx, key, r.ttl); ok {
		return value, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	r.cache.Set(ctx, key, value, r.ttl)
	return value, nil
}

// Put stores a freshly written value so the next read sees it.
func (r *ReadThrough[V]) Put(ctx context.Context, key string, value V) {
	if !r.disabled {
		r.cache.Set(ctx, key, value, r.ttl)
	}
}

// Invalidate drops key.
func (r *ReadThrough[V]) Invalidate(ctx context.Context, key string) {
	if !r.disabled {
		r.cache.Delete(ctx, key)
	}
}
