package database

import (
	"context"
	"fmt"
	"time"

	"snapshop/internal/config"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Execer is the subset of a connection pool needed to run DDL.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// collections are the document tables, one per record type.
var collections = []string{"products", "orders"}

// NewPool creates a new PostgreSQL connection pool.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int("max_connections", cfg.MaxConnections).
		Int("min_connections", cfg.MinConnections).
		Msg("creating database connection pool")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("database connection pool created successfully")

	return pool, nil
}

// EnsureSchema creates the document collections and their indexes if they do
// not exist yet. Each collection stores whole records in a JSONB column keyed
// by the record's string ID; ids compare bytewise so ordering matches Go's.
func EnsureSchema(ctx context.Context, db Execer, logger zerolog.Logger) error {
	for _, name := range collections {
		statements := []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id TEXT COLLATE "C" PRIMARY KEY,
				doc JSONB NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, name),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_doc ON %s USING GIN (doc jsonb_path_ops)`, name, name),
		}

		for _, stmt := range statements {
			if _, err := db.Exec(ctx, stmt); err != nil {
				logger.Error().Err(err).Str("collection", name).Msg("failed to create collection")
				return fmt.Errorf("failed to create collection %s: %w", name, err)
			}
		}
	}

	logger.Info().Strs("collections", collections).Msg("database schema ready")

	return nil
}
