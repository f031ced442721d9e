package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tesseract-hub/property-service/internal/config"
)

// Derived cache keys written next to the entity collections
const (
	DashboardCacheKey = "cache:dashboard"
	RemoteCacheKey    = "cache:remote"
)

// KVStore is a string key-value store. Values are JSON documents.
type KVStore interface {
	// Get returns the value for key; ok is false when the key is absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
	// Keys lists every stored key in ascending order
	Keys(ctx context.Context) ([]string, error)
}

// Backends bundles the optional clients the factory may bind a store to
type Backends struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// New builds the store selected by cfg.Storage.Driver
func New(cfg *config.Config, backends Backends, logger *logrus.Logger) (KVStore, error) {
	switch cfg.Storage.Driver {
	case "", "memory":
		logger.Info("Using in-memory key-value store")
		return NewMemoryStore(), nil
	case "sqlite", "postgres":
		if backends.DB == nil {
			return nil, fmt.Errorf("storage driver %q requires a database connection", cfg.Storage.Driver)
		}
		logger.WithField("driver", cfg.Storage.Driver).Info("Using SQL key-value store")
		return NewGormStore(backends.DB)
	case "redis":
		if backends.Redis == nil {
			return nil, fmt.Errorf("storage driver redis requires a redis client")
		}
		logger.WithField("addr", cfg.Redis.Addr).Info("Using redis key-value store")
		return NewRedisStore(backends.Redis, cfg.Storage.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
