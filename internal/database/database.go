// Package database owns the PostgreSQL connection pool.
//
// It handles:
//   - building the pgx pool from config (lazily: nothing connects until first use)
//   - wiring query tracing (pgx tracelog, slow query logging, New Relic nrpgx5)
//   - scoped session acquisition with guaranteed release
//   - idempotent schema creation from embedded tern migrations
package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/heroes/internal/config"
	loggerConfig "github.com/deppfellow/heroes/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/multitracer"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the pgx connection pool and a logger.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// New creates the PostgreSQL connection pool.
//
// The pool is lazy: New only parses and validates the configuration. A
// database that is down or refuses the credentials surfaces as an error on
// the first query, not here.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}
	if cfg.Database.MinConns > 0 {
		poolConfig.MinConns = cfg.Database.MinConns
	}
	if cfg.Database.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	}
	if cfg.Database.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime
	}

	poolConfig.ConnConfig.Tracer = newTracer(cfg.Observability, logger, loggerService)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("database", cfg.Database.Name).
		Msg("database pool configured")

	return &Database{
		Pool: pool,
		log:  logger,
	}, nil
}

// newTracer assembles the query tracers enabled by config. It returns nil
// when none apply.
//
//   - New Relic datastore segments when the agent is running
//   - every statement to the console in local env
//   - statements slower than the configured threshold, in every env
func newTracer(cfg *config.ObservabilityConfig, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) pgx.QueryTracer {
	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	if cfg.IsLocal() {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	if threshold := cfg.Logging.SlowQueryThreshold; threshold > 0 {
		tracers = append(tracers, newSlowQueryTracer(logger, threshold))
	}

	switch len(tracers) {
	case 0:
		return nil
	case 1:
		return tracers[0]
	default:
		return multitracer.New(tracers...)
	}
}

// Ping verifies that a connection can be established and used.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close closes the database connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
