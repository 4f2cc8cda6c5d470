// Package postgres implements the derived-state store over pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrNotFound is returned for lookups that match no row.
var ErrNotFound = errors.New("not found")

type (
	// Metrics records metrics for store operations.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Store owns the PostgreSQL connection pool. All block-effect commits go
// through single transactions here; fetch workers never touch it.
type Store struct {
	pool    *pgxpool.Pool
	metrics Metrics
	logger  *zap.Logger
}

// New opens a pooled connection and verifies it.
func New(ctx context.Context, dsn string, metrics Metrics, logger *zap.Logger) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &Store{pool: pool, metrics: metrics, logger: logger}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping checks database reachability.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) observe(operation string, err error, started time.Time) {
	if s.metrics != nil {
		s.metrics.Observe(operation, err, started)
	}
}
