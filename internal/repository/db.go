package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaSQL string

// DB bundles the pgx pool with the sqlx handle the repositories use
type DB struct {
	Pool *pgxpool.Pool
	X    *sqlx.DB
}

// Open creates a pgx pool for dsn, checks connectivity and wraps the pool for sqlx
func Open(ctx context.Context, dsn string, maxConns int32) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		Pool: pool,
		X:    sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx"),
	}, nil
}

// Ping checks that the database is reachable
func (d *DB) Ping(ctx context.Context) error {
	return d.X.PingContext(ctx)
}

// Close releases the sql handle and the underlying pool
func (d *DB) Close() {
	d.X.Close()
	d.Pool.Close()
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
