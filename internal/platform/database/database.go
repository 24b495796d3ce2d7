// Package database manages the content store's PostgreSQL connection pool.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool defaults when the corresponding Config field is zero.
const (
	defaultConnLifetime = 30 * time.Minute
	defaultConnIdleTime = 5 * time.Minute
)

// Config holds the connection pool settings.
type Config struct {
	URL          string
	MaxConns     int
	MinConns     int
	ConnLifetime time.Duration
	ConnIdleTime time.Duration
}

// DB wraps a pgx connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// poolConfig turns Config into a pgxpool configuration, applying defaults
// for unset lifetime and idle bounds.
func (c Config) poolConfig() (*pgxpool.Config, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("database URL is empty")
	}
	cfg, err := pgxpool.ParseConfig(c.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}

	cfg.MaxConns = int32(c.MaxConns)
	cfg.MinConns = int32(c.MinConns)
	cfg.MaxConnLifetime = c.ConnLifetime
	if cfg.MaxConnLifetime == 0 {
		cfg.MaxConnLifetime = defaultConnLifetime
	}
	cfg.MaxConnIdleTime = c.ConnIdleTime
	if cfg.MaxConnIdleTime == 0 {
		cfg.MaxConnIdleTime = defaultConnIdleTime
	}
	return cfg, nil
}

// New creates a database connection pool and verifies it with a ping.
func New(ctx context.Context, c Config) (*DB, error) {
	cfg, err := c.poolConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close shuts down the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// HealthCheck verifies the database connection is alive.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
