package favorites

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// NopCache discards writes and reads back nothing.
type NopCache struct{}

func (NopCache) ReadAll(context.Context) ([]byte, error) { return nil, nil }
func (NopCache) WriteAll(context.Context, []byte) error  { return nil }

// MemoryCache keeps the payload in process memory.
type MemoryCache struct {
	mu   sync.Mutex
	data []byte
}

func (c *MemoryCache) ReadAll(context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		return nil, nil
	}
	return append([]byte(nil), c.data...), nil
}

func (c *MemoryCache) WriteAll(_ context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = append([]byte(nil), data...)
	return nil
}

// redisClient is the subset of *redis.Client used by RedisCache.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisCache stores a favorites set as one JSON string under a single key.
type RedisCache struct {
	client redisClient
	key    string
	ttl    time.Duration
}

// NewRedisCache creates a cache bound to key. A zero ttl keeps the key forever.
func NewRedisCache(client redisClient, key string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, key: key, ttl: ttl}
}

func (c *RedisCache) ReadAll(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *RedisCache) WriteAll(ctx context.Context, data []byte) error {
	return c.client.Set(ctx, c.key, data, c.ttl).Err()
}
