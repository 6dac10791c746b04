package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/gestor/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisNameCache implements NameCache using Redis, for deployments where
// multiple instances should share resolved names.
type RedisNameCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisNameCache creates a Redis-backed name cache and verifies the
// connection before returning.
func NewRedisNameCache(cfg config.RedisConfig, logger *zap.Logger) (*RedisNameCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisNameCache{
		client:    client,
		keyPrefix: "name:",
		logger:    logger,
	}, nil
}

// NewRedisNameCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisNameCacheWithClient(client *redis.Client, keyPrefix string, logger *zap.Logger) *RedisNameCache {
	if keyPrefix == "" {
		keyPrefix = "name:"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisNameCache{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// Get retrieves a cached name. Redis errors are logged and reported as misses.
func (c *RedisNameCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("name cache read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

// Set stores a name with the given TTL. Failures are logged and swallowed.
func (c *RedisNameCache) Set(ctx context.Context, key string, name string, ttl time.Duration) {
	if err := c.client.Set(ctx, c.keyPrefix+key, name, ttl).Err(); err != nil {
		c.logger.Warn("name cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Close releases the underlying Redis client
func (c *RedisNameCache) Close() error {
	return c.client.Close()
}

// Ensure RedisNameCache implements NameCache
var _ NameCache = (*RedisNameCache)(nil)
