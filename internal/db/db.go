package db

import (
	"context"
	"fmt"
	"time"

	"github.com/corpoativo/gymapi/internal/config"
	"github.com/corpoativo/gymapi/internal/repo"
	"github.com/corpoativo/gymapi/internal/repo/postgres"
	"github.com/corpoativo/gymapi/internal/repo/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(dbURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)

	if err != nil {
		return nil, err
	}

	cfg.MaxConns = 5

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)

	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)

	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// OpenStore picks the backend from configuration. Handlers only ever see
// the repo.Store interface.
func OpenStore(cfg config.Config) (repo.Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		if err := RunMigrations(cfg.DBURL, cfg.MigrationsDir); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}

		pool, err := NewPool(cfg.DBURL)

		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		return postgres.NewStore(pool), nil

	case "sqlite":
		store, err := sqlite.Open(cfg.SQLitePath)

		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}

		return store, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
