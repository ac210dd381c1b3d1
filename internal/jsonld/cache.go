// SPDX-License-Identifier: Apache-2.0

package jsonld

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a context document is not cached.
var ErrCacheMiss = errors.New("context document not in cache")

// ContextCache stores fetched remote context documents keyed by URL.
type ContextCache interface {
	Get(ctx context.Context, url string) ([]byte, error)
	Set(ctx context.Context, url string, body []byte) error
}

// RedisContextCache keeps remote context documents in Redis with a TTL, so
// repeated expansions do not refetch schema servers on every request.
type RedisContextCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextCache(client *redis.Client, ttl time.Duration) *RedisContextCache {
	return &RedisContextCache{client: client, ttl: ttl}
}

func (c *RedisContextCache) Get(ctx context.Context, url string) ([]byte, error) {
	body, err := c.client.Get(ctx, cacheKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *RedisContextCache) Set(ctx context.Context, url string, body []byte) error {
	return c.client.Set(ctx, cacheKey(url), body, c.ttl).Err()
}

func cacheKey(url string) string {
	return "jsonld:context:" + url
}

// MemoryContextCache is a process-local ContextCache for tests and for
// deployments without Redis.
type MemoryContextCache struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryContextCache() *MemoryContextCache {
	return &MemoryContextCache{docs: make(map[string][]byte)}
}

func (c *MemoryContextCache) Get(_ context.Context, url string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.docs[url]
	if !ok {
		return nil, ErrCacheMiss
	}
	return body, nil
}

func (c *MemoryContextCache) Set(_ context.Context, url string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[url] = body
	return nil
}
