package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pizzahub/internal/config"
	"pizzahub/internal/store"
)

// postgresDocument names the row holding the document.
const postgresDocument = "default"

// openBackend connects the configured backend. The returned func releases
// its connections.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreMemory:
		return store.NewMemoryBackend(), noop, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		return store.NewRedisBackend(client, cfg.Redis.Key), client.Close, nil

	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		pg := store.NewPostgresBackend(db, postgresDocument)
		if err := pg.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return pg, db.Close, nil
	}

	return store.NewFileBackend(cfg.DataFile), noop, nil
}

// backendFields describes the opened backend for the startup log line.
func backendFields(cfg *config.Config, backend store.Backend) []zap.Field {
	fields := []zap.Field{zap.String("store", cfg.Store)}
	switch b := backend.(type) {
	case *store.FileBackend:
		fields = append(fields, zap.String("data", b.Path()))
	case *store.RedisBackend:
		fields = append(fields, zap.String("addr", cfg.Redis.Addr), zap.String("key", cfg.Redis.Key))
	}
	return fields
}
