package cache

import (
	"fmt"

	"github.com/gestor/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NameCacheFactory creates name caches based on configuration
type NameCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// NameCacheFactoryOption is a functional option for configuring the factory
type NameCacheFactoryOption func(*NameCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) NameCacheFactoryOption {
	return func(f *NameCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) NameCacheFactoryOption {
	return func(f *NameCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewNameCacheFactory creates a new factory
func NewNameCacheFactory(cfg config.RedisConfig, opts ...NameCacheFactoryOption) *NameCacheFactory {
	f := &NameCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create builds a name cache for the configured backend. With the redis
// backend it tries Redis first and falls back to in-memory when allowed.
func (f *NameCacheFactory) Create(backend string) (NameCache, error) {
	switch backend {
	case "memory":
		return NewInMemoryNameCache(), nil
	case "redis":
		c, err := NewRedisNameCache(f.redisConfig, f.logger)
		if err == nil {
			f.logger.Info("using Redis name cache")
			return c, nil
		}
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("Redis required for name cache but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory name cache", zap.Error(err))
		return NewInMemoryNameCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
