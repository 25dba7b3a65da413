// Package cachemanager provides the TTL caches the ledger keeps in memory:
// the replay window of processed command IDs and recently read records.
package cachemanager

import (
	"context"
	"time"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Cache is a string-keyed TTL cache.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V, ttl time.Duration)
	// Remember stores value only when key is absent. When key is present it
	// returns the existing value and false.
	Remember(ctx context.Context, key string, value V, ttl time.Duration) (V, bool)
	// Touch returns the value under key and restarts its TTL.
	Touch(ctx context.Context, key string, ttl time.Duration) (V, bool)
	Delete(ctx context.Context, keys ...string)
	Flush(ctx context.Context)
	Count() int
}
