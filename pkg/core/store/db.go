// Package store persists property records, numbers-framework rows and
// engine results in Postgres. The engine itself never imports this
// package; handlers load a snapshot here, run the engine, and append the
// result records back through these repos.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB initializes the connection pool from DATABASE_URL.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			err = fmt.Errorf("DATABASE_URL environment variable not set")
			return
		}

		config, parseErr := pgxpool.ParseConfig(dbURL)
		if parseErr != nil {
			err = fmt.Errorf("failed to parse database config: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, config)
	})
	return err
}

// GetPool returns the shared pool, nil before InitDB.
func GetPool() *pgxpool.Pool {
	return pool
}

// Close shuts the pool down.
func Close() {
	if pool != nil {
		pool.Close()
	}
}

// Ping verifies the connection is alive, for the health endpoint.
func Ping(ctx context.Context) error {
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	return pool.Ping(ctx)
}

// Shared tables the repos write to. The per-property framework schemas
// (numbers, documents, summary) are provisioned by the insert trigger on
// properties; these four live outside any property schema.
var coreTables = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS calc_outputs (
		property_id UUID PRIMARY KEY,
		outputs JSONB NOT NULL,
		anomalies JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS calc_log (
		id UUID PRIMARY KEY,
		property_id UUID NOT NULL,
		record JSONB NOT NULL,
		triggered_by TEXT,
		trigger_type TEXT,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS scenario_snapshots (
		id UUID PRIMARY KEY,
		property_id UUID NOT NULL,
		name TEXT NOT NULL,
		deltas JSONB NOT NULL,
		outputs JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureCoreSchema creates the shared tables on startup so a fresh
// database works without a manual migration step.
func EnsureCoreSchema(ctx context.Context) error {
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	for _, stmt := range coreTables {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure core schema: %w", err)
		}
	}
	return nil
}
