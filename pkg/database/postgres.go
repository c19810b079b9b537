package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luowen/coinsight/pkg/config"
)

// DB wraps the pgxpool.Pool and provides additional functionality.
// The connection pool is created only here.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool
func New(cfg *config.Config) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Configure connection pool
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the database connection pool
func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Ping checks if the database is accessible
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Migrate creates the schema used by the quote, watchlist and portfolio stores.
// Idempotent; safe to run on every startup.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS cryptocurrencies (
			id         BIGSERIAL PRIMARY KEY,
			symbol     TEXT UNIQUE NOT NULL,
			name       TEXT NOT NULL,
			slug       TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS price_history (
			id                 BIGSERIAL PRIMARY KEY,
			crypto_id          BIGINT NOT NULL REFERENCES cryptocurrencies(id),
			ts                 TIMESTAMPTZ NOT NULL,
			price              DOUBLE PRECISION NOT NULL,
			market_cap         DOUBLE PRECISION,
			volume_24h         DOUBLE PRECISION,
			percent_change_1h  DOUBLE PRECISION,
			percent_change_24h DOUBLE PRECISION,
			percent_change_7d  DOUBLE PRECISION,
			circulating_supply DOUBLE PRECISION,
			UNIQUE (crypto_id, ts)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_history_crypto_ts
			ON price_history (crypto_id, ts)`,
		`CREATE TABLE IF NOT EXISTS watchlist (
			id            BIGSERIAL PRIMARY KEY,
			symbol        TEXT UNIQUE NOT NULL,
			notes         TEXT,
			alert_price   DOUBLE PRECISION,
			alert_enabled BOOLEAN NOT NULL DEFAULT true,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS portfolio (
			id         BIGSERIAL PRIMARY KEY,
			symbol     TEXT NOT NULL,
			quantity   DOUBLE PRECISION NOT NULL,
			buy_price  DOUBLE PRECISION NOT NULL,
			buy_date   TIMESTAMPTZ NOT NULL,
			notes      TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
