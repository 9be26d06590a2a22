// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// It handles:
//   - building a DSN from config
//   - creating a pgx connection pool (pgxpool) and applying pool tuning
//   - wiring query tracing/logging (pgx tracelog + zerolog, slow query warnings)
//   - optional New Relic instrumentation (nrpgx5)
//   - scoped connection and transaction helpers used by repositories
//   - versioned schema migrations (tern)
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/job-board/internal/config"
	loggerConfig "github.com/deppfellow/job-board/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
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

// multiTracer chains several pgx query tracers.
//
// pgx has a single Tracer slot in ConnConfig; this adapter lets the New Relic
// tracer and the local SQL logger both run.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

type slowQueryKey struct{}

type slowQueryStart struct {
	sql string
	at  time.Time
}

// slowQueryTracer warns about statements that take at least threshold.
type slowQueryTracer struct {
	threshold time.Duration
	log       *zerolog.Logger
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, slowQueryKey{}, slowQueryStart{sql: data.SQL, at: time.Now()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(slowQueryKey{}).(slowQueryStart)
	if !ok {
		return
	}

	elapsed := time.Since(start.at)
	if elapsed < t.threshold {
		return
	}

	t.log.Warn().
		Err(data.Err).
		Dur("duration", elapsed).
		Str("sql", start.sql).
		Msg("slow query")
}

// DatabasePingTimeout is how long startup waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// DSN returns the connection string for cfg.
//
// database.url wins when present. Otherwise the URL is composed from the
// individual fields, with the password URL-escaped so characters like '@'
// or ':' cannot break the DSN.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	userInfo := url.QueryEscape(cfg.User)
	if cfg.Password != "" {
		userInfo += ":" + url.QueryEscape(cfg.Password)
	}

	return fmt.Sprintf("postgres://%s@%s/%s?sslmode=%s",
		userInfo,
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

// New creates a PostgreSQL connection pool with instrumentation.
//
// Behavior:
//   - Parse DSN into pgxpool config and apply pool limits from config
//   - Attach New Relic tracer if the agent is running
//   - In the local env, attach the SQL trace logger (chained with New Relic)
//   - Create pool, ping it, and return Database
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(DSN(&cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	if cfg.Database.MaxIdleConns > 0 {
		pgxPoolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	}
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	var tracers []pgx.QueryTracer

	if loggerService != nil && loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	if obs := cfg.Observability; obs != nil && obs.Logging.SlowQueryThreshold > 0 {
		tracers = append(tracers, &slowQueryTracer{
			threshold: obs.Logging.SlowQueryThreshold,
			log:       logger,
		})
	}

	// Very noisy, which is why it's only on in local.
	if cfg.Primary.Env == config.EnvLocal {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	database := &Database{
		Pool: pool,
		log:  logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Msg("connected to the database")

	return database, nil
}

// Close closes the database connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
