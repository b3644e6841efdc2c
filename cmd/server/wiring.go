package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/gofiber/storage/redis/v3"

	"innovata/internal/cache"
	"innovata/internal/catalog"
	"innovata/internal/config"
	"innovata/internal/metrics"
	"innovata/internal/sheet"
)

// app bundles what both commands need.
type app struct {
	cfg     *config.Config
	tables  config.Tables
	catalog *catalog.Catalog
	store   *redis.Storage
}

func setup(ctx context.Context) (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tables, err := config.LoadTables(cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.ConfigFile, err)
	}

	opts := cache.Options{
		StaleTime:   cfg.StaleTime,
		SnapshotTTL: cfg.SnapshotTTL,
		Logger:      slog.Default(),
		OnFetch:     metrics.ObserveFetch,
	}

	a := &app{cfg: cfg, tables: tables}
	if cfg.RedisURL != "" {
		a.store = redis.New(redis.Config{URL: cfg.RedisURL})
		opts.Store = a.store
		log.Println("Snapshot store enabled")
	}

	fetcher := sheet.NewFetcher(cfg.FetchTimeout, sheet.ParseFormat(cfg.SheetFormat))
	a.catalog = catalog.New(ctx, cfg, tables, fetcher, opts)
	return a, nil
}

func (a *app) Close() {
	a.catalog.Close()
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Printf("Failed to close snapshot store: %v", err)
		}
	}
}
