// Package solvecache memoizes solver outcomes by input fingerprint so a
// repeated solve (same bindings, same model, same backend, same budget)
// can short-circuit instead of re-running CP-SAT. It is a pure performance
// layer: a solve must produce the same outcome whether or not a cache is
// consulted, so callers must treat the cache as optional.
package solvecache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/solverbackend"
)

// Cache stores a solverbackend.Result keyed by an opaque fingerprint.
type Cache interface {
	Get(ctx context.Context, key string) (solverbackend.Result, bool)
	Set(ctx context.Context, key string, result solverbackend.Result, ttl time.Duration)
}

// memoryCache is the default in-process cache: a sync.RWMutex-guarded map
// with a TTL check on read.
type memoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
}

type memoryEntry struct {
	result    solverbackend.Result
	expiresAt time.Time
}

// NewMemory builds the default in-process cache.
func NewMemory() Cache {
	return &memoryCache{items: make(map[string]memoryEntry)}
}

func (c *memoryCache) Get(_ context.Context, key string) (solverbackend.Result, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return solverbackend.Result{}, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return solverbackend.Result{}, false
	}
	return entry.result, true
}

func (c *memoryCache) Set(_ context.Context, key string, result solverbackend.Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = memoryEntry{result: result, expiresAt: time.Now().Add(ttl)}
}

// redisCache is an optional L2 cache for deployments that run multiple
// scheduler instances behind a shared Redis.
type redisCache struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an already-connected redis.Client. Use cache.NewRedis
// (pkg/cache-equivalent) to construct the client itself; this package only
// owns the cache semantics.
func NewRedis(client *redis.Client, keyPrefix string) Cache {
	return &redisCache{client: client, prefix: keyPrefix}
}

func (c *redisCache) Get(ctx context.Context, key string) (solverbackend.Result, bool) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return solverbackend.Result{}, false
	}
	var result solverbackend.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return solverbackend.Result{}, false
	}
	return result, true
}

func (c *redisCache) Set(ctx context.Context, key string, result solverbackend.Result, ttl time.Duration) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}
