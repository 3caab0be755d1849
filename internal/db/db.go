// Package db provides PostgreSQL database access for the persistent research cache.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS research_results (
	cache_key    TEXT PRIMARY KEY,
	company_name TEXT NOT NULL,
	job_role     TEXT NOT NULL DEFAULT '',
	payload      JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS research_results_expires_at_idx ON research_results (expires_at);
`

// Migrate creates the tables used by the research cache if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
