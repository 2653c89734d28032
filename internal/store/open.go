package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/db"
)

// Backend is an opened KV plus the handles behind it. DB is set for the SQL
// drivers, Redis for the redis driver.
type Backend struct {
	KV    KV
	DB    *gorm.DB
	Redis *redis.Client
}

// Open connects the backend selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return &Backend{KV: NewMemoryKV()}, nil

	case config.DriverSQLite, config.DriverPostgres:
		gdb, err := db.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		return &Backend{KV: NewGormKV(gdb), DB: gdb}, nil

	case config.DriverRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		return &Backend{KV: NewRedisKV(client, cfg.RedisPrefix), Redis: client}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func (b *Backend) Close() error {
	var errs []error
	if b.DB != nil {
		if sqlDB, err := b.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if b.Redis != nil {
		errs = append(errs, b.Redis.Close())
	}
	return errors.Join(errs...)
}

// SeedFromConfig picks the seed file (if any) and applies SEED_SAMPLE_QUEUE.
func SeedFromConfig(cfg *config.Config) (Seed, error) {
	seed := DefaultSeed()
	if cfg.SeedFile != "" {
		loaded, err := LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return Seed{}, err
		}
		seed = loaded
	}
	if !cfg.SeedSampleQueue {
		seed = seed.WithoutSampleQueue()
	}
	return seed, nil
}
