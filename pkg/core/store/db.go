// Package store persists finished audit reports in Postgres.
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

// InitDB initializes the report store connection pool using the DATABASE_URL environment variable
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
			err = fmt.Errorf("failed to parse report store config: %w", parseErr)
			return
		}
		// Identifies this service in pg_stat_activity.
		config.ConnConfig.RuntimeParams["application_name"] = "declaration_audit"

		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			err = fmt.Errorf("failed to connect to the report store: %w", err)
		}
	})
	return err
}

// GetPool returns the report store connection pool
func GetPool() *pgxpool.Pool {
	return pool
}

// Close closes the report store connection pool
func Close() {
	if pool != nil {
		pool.Close()
	}
}
