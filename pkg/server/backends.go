package server

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/store"
)

// OpenStore returns the record store selected by cfg.
func OpenStore(ctx context.Context, cfg Config, logger *log.Logger) (store.Store, error) {
	switch {
	case cfg.MongoURI != "":
		s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
		if err != nil {
			return nil, fmt.Errorf("open mongo store: %w", err)
		}
		logger.Info("using mongo store", "database", cfg.MongoDatabase)
		return s, nil
	case cfg.StoreDir != "":
		s, err := store.NewFileStore(cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		logger.Info("using file store", "dir", cfg.StoreDir)
		return s, nil
	}
	logger.Warn("using in-memory store; records are lost on exit")
	return store.NewMemoryStore(), nil
}

// OpenCache returns the artifact cache selected by cfg.
func OpenCache(ctx context.Context, cfg Config, logger *log.Logger) (cache.Cache, error) {
	switch {
	case cfg.RedisURL != "":
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: cfg.RedisURL, Prefix: "stackchart:"})
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		logger.Info("using redis cache")
		return c, nil
	case cfg.CacheDir != "":
		c, err := cache.NewFileCache(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		logger.Info("using file cache", "dir", cfg.CacheDir)
		return c, nil
	}
	return cache.NewNullCache(), nil
}
