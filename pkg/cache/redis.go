package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares cached orders between service replicas.
type RedisCache struct {
	client redis.UniversalClient
	logger *slog.Logger
	prefix string
	ttl    time.Duration
}

func NewRedisCache(logger *slog.Logger, client redis.UniversalClient, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger.With(slog.String("cache", "redis")),
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		observeLookup("redis", false)
		return nil, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "failed to get key", slog.String("key", key), slog.Any("error", err))
		observeLookup("redis", false)
		return nil, false
	}
	observeLookup("redis", true)
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to set key", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to delete key", slog.String("key", key), slog.Any("error", err))
	}
}

// Start checks the connection before the service begins to rely on it.
func (c *RedisCache) Start(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
