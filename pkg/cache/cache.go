package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinema-ticketing/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache stores JSON-encoded values under string keys.
type Cache interface {
	// Get decodes the value stored at key into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisCache connects to Redis and checks it with a PING.
func NewRedisCache(ctx context.Context, config utils.RedisConfig, prefix string, log *zap.Logger) (Cache, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis %s: %w", config.Addr, err)
	}

	return NewRedisCacheFromClient(client, prefix, config.TTL, log), client, nil
}

func NewRedisCacheFromClient(client *redis.Client, prefix string, ttl time.Duration, log *zap.Logger) Cache {
	return &redisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    log.With(zap.String("component", "cache")),
	}
}

func (c *redisCache) key(key string) string {
	return c.prefix + ":" + key
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn("Dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, c.key(key)).Err()
		return false, nil
	}

	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache key %s: %w", key, err)
	}

	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cache key %s: %w", key, err)
	}

	return nil
}

type noopCache struct{}

// NewNoop returns a Cache that never stores anything.
func NewNoop() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, any) (bool, error) { return false, nil }

func (noopCache) Set(context.Context, string, any) error { return nil }

// Remember returns the cached value at key, or calls load and caches its
// result. Cache failures are logged and fall through to load.
func Remember[T any](ctx context.Context, c Cache, log *zap.Logger, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}
