// Package cache is a best-effort page cache for rendered feed pages,
// keyed by (view name, page number). Invalidation bumps a per-view
// version counter instead of scanning for keys.
package cache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	GetPage(ctx context.Context, view string, page int) ([]byte, bool)
	SetPage(ctx context.Context, view string, page int, data []byte)
	Invalidate(ctx context.Context, view string)
}

const defaultTTL = 20 * time.Second

type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(rdb *redis.Client) Cache {
	return &redisCache{rdb: rdb, ttl: defaultTTL}
}

func (c *redisCache) verKey(view string) string { return "feed:" + view + ":ver" }

func (c *redisCache) pageKey(ctx context.Context, view string, page int) string {
	ver, err := c.rdb.Get(ctx, c.verKey(view)).Int64()
	if err != nil && err != redis.Nil {
		log.Printf("cache version read error: %v", err)
	}
	return fmt.Sprintf("feed:%s:v%d:p%d", view, ver, page)
}

func (c *redisCache) GetPage(ctx context.Context, view string, page int) ([]byte, bool) {
	b, err := c.rdb.Get(ctx, c.pageKey(ctx, view, page)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *redisCache) SetPage(ctx context.Context, view string, page int, data []byte) {
	if err := c.rdb.Set(ctx, c.pageKey(ctx, view, page), data, c.ttl).Err(); err != nil {
		log.Printf("cache write error: %v", err)
	}
}

func (c *redisCache) Invalidate(ctx context.Context, view string) {
	if err := c.rdb.Incr(ctx, c.verKey(view)).Err(); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}

type memoryCache struct {
	mu    sync.RWMutex
	pages map[string][]byte
	vers  map[string]int64
}

// NewMemory is a process-local cache used in tests and when redis is not
// configured.
func NewMemory() Cache {
	return &memoryCache{pages: make(map[string][]byte), vers: make(map[string]int64)}
}

func (c *memoryCache) key(view string, page int) string {
	return fmt.Sprintf("feed:%s:v%d:p%d", view, c.vers[view], page)
}

func (c *memoryCache) GetPage(_ context.Context, view string, page int) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.pages[c.key(view, page)]
	return b, ok
}

func (c *memoryCache) SetPage(_ context.Context, view string, page int, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[c.key(view, page)] = data
}

func (c *memoryCache) Invalidate(_ context.Context, view string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vers[view]++
}
