package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config parses dsn and applies accessKey as the connection password when set.
func Config(dsn, accessKey string) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("platform/db: parse config: %w", err)
	}
	if accessKey != "" {
		config.ConnConfig.Password = accessKey
	}
	// Dashboard reads only; keep the pool small and lazy.
	config.MinConns = 0
	if config.MaxConns > 8 {
		config.MaxConns = 8
	}
	return config, nil
}

// Open creates a pool without dialing. Connections are established on first use.
func Open(ctx context.Context, dsn, accessKey string) (*pgxpool.Pool, error) {
	config, err := Config(dsn, accessKey)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("platform/db: new pool: %w", err)
	}
	return pool, nil
}

// New creates a PostgreSQL connection pool and verifies connectivity.
func New(ctx context.Context, dsn, accessKey string) (*pgxpool.Pool, error) {
	pool, err := Open(ctx, dsn, accessKey)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("platform/db: ping: %w", err)
	}
	return pool, nil
}
