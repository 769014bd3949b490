package cache

import (
	"io"

	catalogapp "github.com/menudash/backend/internal/application/catalog"
	"github.com/menudash/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewComplementCache builds the complement cache selected by cfg.Driver.
// It returns a nil cache for "none". When Redis is unreachable it falls back
// to the in-memory cache. The returned closer releases background resources.
func NewComplementCache(cfg config.CacheConfig, redisCfg config.RedisConfig, logger *zap.Logger) (catalogapp.ComplementCache, io.Closer) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case "none":
		return nil, nopCloser{}
	case "redis":
		c, err := NewRedisComplementCache(redisCfg, cfg.TTL, WithLogger(logger))
		if err == nil {
			logger.Info("Complement cache using Redis", zap.String("addr", redisCfg.Addr()))
			return c, c
		}
		logger.Warn("Redis unavailable, falling back to in-memory complement cache", zap.Error(err))
	}

	c := NewInMemoryComplementCache(cfg.TTL)
	return c, stopCloser{c}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type stopCloser struct {
	c *InMemoryComplementCache
}

func (s stopCloser) Close() error {
	s.c.Stop()
	return nil
}
