package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/property-service/internal/clients"
	"github.com/tesseract-hub/property-service/internal/config"
	"github.com/tesseract-hub/property-service/internal/documents"
	"github.com/tesseract-hub/property-service/internal/repository"
	"github.com/tesseract-hub/property-service/internal/services"
	"github.com/tesseract-hub/property-service/internal/storage"
)

// app holds the storage backends and services shared by every command
type app struct {
	cfg    *config.Config
	logger *logrus.Logger

	kv        storage.KVStore
	repo      *repository.EntityRepository
	analytics *services.AnalyticsService
	apps      *services.ApplicationService
	sync      *services.SyncService
	documents *services.DocumentService

	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	var backends storage.Backends
	switch {
	case cfg.IsSQLStorage():
		db, err := config.InitDB(cfg)
		if err != nil {
			return nil, err
		}
		backends.DB = db
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, func() { sqlDB.Close() })
		}
		logger.WithField("driver", cfg.Storage.Driver).Info("Connected to database")
	case cfg.Storage.Driver == "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		backends.Redis = client
		a.closers = append(a.closers, func() { client.Close() })
		logger.WithField("addr", cfg.Redis.Addr).Info("Connected to redis")
	}

	kv, err := storage.New(cfg, backends, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.kv = kv

	a.repo = repository.NewEntityRepository(kv, logger)
	if err := a.repo.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load entities: %w", err)
	}

	var remote clients.AnalyticsClient
	if cfg.Remote.Enabled {
		remote = clients.NewAnalyticsClient(cfg.Remote, logger)
		logger.WithField("url", cfg.Remote.BaseURL).Info("Remote analytics enabled")
	}

	payloads, err := documents.NewPayloadStore(ctx, cfg.Documents, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.analytics = services.NewAnalyticsService(a.repo, kv, cfg.Analytics, logger)
	a.apps = services.NewApplicationService(a.repo, logger)
	a.sync = services.NewSyncService(a.repo, a.analytics, remote, kv, logger)
	a.documents = services.NewDocumentService(a.repo, payloads, logger)
	return a, nil
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// Close releases backends in reverse order of acquisition
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
