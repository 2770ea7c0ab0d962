// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package bootstrap opens the backing resources shared by cmd/api and
cmd/catalogctl: the catalogue snapshot and the view-session store.

Both commands pick the same source from the same [config.Config], so a title
listed by catalogctl is exactly the title the API serves.
*/
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/tankobon/internal/catalog"
	"github.com/taibuivan/tankobon/internal/platform/config"
	"github.com/taibuivan/tankobon/internal/platform/constants"
	"github.com/taibuivan/tankobon/internal/platform/migration"
	pgstore "github.com/taibuivan/tankobon/internal/platform/postgres"
	redisstore "github.com/taibuivan/tankobon/internal/platform/redis"
)

// # Catalogue

// Catalog is a loaded catalogue snapshot and the connection it came from.
type Catalog struct {
	Store *catalog.Store

	// Pool is nil unless the catalogue was read from PostgreSQL.
	Pool *pgxpool.Pool
}

// Close releases the database pool, if any.
func (c *Catalog) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

/*
OpenCatalog selects the configured source, reads it once and builds the store.

Description: For the postgres source it connects the pool and, when
RUN_MIGRATIONS is set, applies pending migrations before reading. The pool is
left open on the returned [Catalog] for the readiness probe.

Parameters:
  - ctx: context.Context (Bounds connecting and loading)
  - cfg: *config.Config
  - logger: *slog.Logger

Returns:
  - *Catalog: Snapshot plus the optional pool
  - error: Connection, migration or decode failures
*/
func OpenCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Catalog, error) {
	switch cfg.CatalogSource {
	case config.SourceFile:
		store, err := catalog.LoadStore(ctx, catalog.NewFileSource(cfg.CatalogFile), logger)
		if err != nil {
			return nil, err
		}
		return &Catalog{Store: store}, nil

	case config.SourcePostgres:
		pool, err := OpenPool(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}

		store, err := catalog.LoadStore(ctx, catalog.NewPostgresSource(pool, logger), logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Catalog{Store: store, Pool: pool}, nil

	default:
		store, err := catalog.LoadStore(ctx, catalog.EmbeddedSource{}, logger)
		if err != nil {
			return nil, err
		}
		return &Catalog{Store: store}, nil
	}
}

// OpenPool connects to DATABASE_URL and applies migrations when RUN_MIGRATIONS is set.
func OpenPool(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("bootstrap: DATABASE_URL is not set")
	}

	if cfg.RunMigrations {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
			return nil, err
		}
	}

	return pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
}

// # View Sessions

// Sessions is the configured session store and the client behind it.
type Sessions struct {
	Store catalog.SessionStore

	// Client is nil when sessions live in process memory.
	Client *goredis.Client
}

// Close releases the Redis client, if any.
func (s *Sessions) Close() error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Close()
}

// OpenSessions returns a Redis-backed store when REDIS_URL is set and an
// in-memory store otherwise. The in-memory sweeper runs until ctx is done.
func OpenSessions(ctx, startupCtx context.Context, cfg *config.Config, logger *slog.Logger) (*Sessions, error) {
	if cfg.RedisURL == "" {
		store := catalog.NewMemorySessionStore(time.Now)
		go store.RunSweeper(ctx, constants.SessionSweepInterval, logger)

		logger.Info("view_sessions_in_memory")
		return &Sessions{Store: store}, nil
	}

	client, err := redisstore.NewClient(startupCtx, cfg.RedisURL, logger)
	if err != nil {
		return nil, err
	}

	return &Sessions{Store: catalog.NewRedisSessionStore(client), Client: client}, nil
}
