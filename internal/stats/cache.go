package stats

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds one recently built dashboard summary. Entries expire fast;
// the dashboard tolerates numbers a few seconds old but not stale tabs.
type Cache interface {
	Get(ctx context.Context) (Summary, bool)
	Set(ctx context.Context, s Summary)
}

type MemoryCache struct {
	mu  sync.RWMutex
	val Summary
	ts  time.Time
	ttl time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl}
}

func (c *MemoryCache) Get(ctx context.Context) (Summary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ts.IsZero() || time.Since(c.ts) > c.ttl {
		return Summary{}, false
	}
	return c.val, true
}

func (c *MemoryCache) Set(ctx context.Context, s Summary) {
	c.mu.Lock()
	c.val = s
	c.ts = time.Now()
	c.mu.Unlock()
}

// RedisCache shares the summary between gateway replicas.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisCache(addr, password, key string, ttl time.Duration) *RedisCache {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &RedisCache{client: c, key: key, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) (Summary, bool) {
	b, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		return Summary{}, false
	}
	var s Summary
	if err := json.Unmarshal(b, &s); err != nil {
		return Summary{}, false
	}
	return s, true
}

func (c *RedisCache) Set(ctx context.Context, s Summary) {
	b, err := json.Marshal(s)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key, b, c.ttl).Err()
}
