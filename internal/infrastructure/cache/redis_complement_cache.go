package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/menudash/backend/internal/application/catalog"
	"github.com/menudash/backend/internal/domain/catalog"
	"github.com/menudash/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "menudash:complement:"

// RedisComplementCache caches complements as JSON in Redis so every
// instance shares the same entries. Redis failures degrade to cache misses.
type RedisComplementCache struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisCacheOption is a functional option for configuring the cache
type RedisCacheOption func(*RedisComplementCache)

// WithKeyPrefix sets the key prefix
func WithKeyPrefix(prefix string) RedisCacheOption {
	return func(c *RedisComplementCache) {
		c.keyPrefix = prefix
	}
}

// WithLogger sets the logger used to report Redis failures
func WithLogger(logger *zap.Logger) RedisCacheOption {
	return func(c *RedisComplementCache) {
		c.logger = logger
	}
}

// NewRedisComplementCache connects to Redis and creates the cache
func NewRedisComplementCache(cfg config.RedisConfig, ttl time.Duration, opts ...RedisCacheOption) (*RedisComplementCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisComplementCacheWithClient(client, ttl, opts...)
	c.ownsClient = true
	return c, nil
}

// NewRedisComplementCacheWithClient creates a cache on an existing client
func NewRedisComplementCacheWithClient(client *redis.Client, ttl time.Duration, opts ...RedisCacheOption) *RedisComplementCache {
	c := &RedisComplementCache{
		client:    client,
		keyPrefix: defaultKeyPrefix,
		ttl:       ttl,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get implements ComplementCache
func (c *RedisComplementCache) Get(ctx context.Context, id uuid.UUID) (*catalog.Complement, bool) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Complement cache read failed", zap.String("complement_id", id.String()), zap.Error(err))
		}
		return nil, false
	}

	var complement catalog.Complement
	if err := json.Unmarshal(data, &complement); err != nil {
		c.logger.Warn("Dropping undecodable complement cache entry", zap.String("complement_id", id.String()), zap.Error(err))
		c.Delete(ctx, id)
		return nil, false
	}
	return &complement, true
}

// Set implements ComplementCache
func (c *RedisComplementCache) Set(ctx context.Context, complement *catalog.Complement) {
	if complement == nil {
		return
	}
	data, err := json.Marshal(complement)
	if err != nil {
		c.logger.Warn("Complement cache encode failed", zap.String("complement_id", complement.ID.String()), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(complement.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Complement cache write failed", zap.String("complement_id", complement.ID.String()), zap.Error(err))
	}
}

// Delete implements ComplementCache
func (c *RedisComplementCache) Delete(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.key(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Complement cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Ping checks that Redis answers
func (c *RedisComplementCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client if the cache created it
func (c *RedisComplementCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}

func (c *RedisComplementCache) key(id uuid.UUID) string {
	return c.keyPrefix + id.String()
}

var _ catalogapp.ComplementCache = (*RedisComplementCache)(nil)
