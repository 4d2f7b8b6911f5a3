// Package database is the persistence gateway: it owns the bounded connection
// pool, hands out one connection per unit of work and always takes it back,
// and retries transient acquisition failures with exponential backoff.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// HealthCheckTimeout is the maximum time to wait for a health check ping.
const HealthCheckTimeout = 5 * time.Second

// Querier is satisfied by both pooled connections and transactions.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Conn is a connection checked out of a Source. Release returns it to the
// pool; Discard closes it so the pool never hands it out again.
type Conn interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Release()
	Discard()
}

// Source hands out connections. Acquire must honour ctx cancellation.
type Source interface {
	Acquire(ctx context.Context) (Conn, error)
	Stat() PoolStats
	Close()
}

// PoolStats is a snapshot of pool membership.
type PoolStats struct {
	TotalConns        int32 `json:"total_conns"`
	AcquiredConns     int32 `json:"acquired_conns"`
	IdleConns         int32 `json:"idle_conns"`
	ConstructingConns int32 `json:"constructing_conns"`
	MaxConns          int32 `json:"max_conns"`
}

// HealthStatus contains database health information.
type HealthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	PoolStats
}

// Gateway scopes connection use to a single unit of work. It is safe for
// concurrent use.
type Gateway struct {
	source  Source
	policy  Policy
	metrics *Metrics
	logger  *slog.Logger
}

// NewGateway wraps source with the given acquisition policy. A nil metrics or
// logger is replaced with a no-op registration and slog.Default respectively.
func NewGateway(source Source, policy Policy, metrics *Metrics, logger *slog.Logger) *Gateway {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		source:  source,
		policy:  policy.normalized(),
		metrics: metrics,
		logger:  logger,
	}
}

// WithConn acquires a connection, runs fn with it and releases it on every
// exit path, including a panic inside fn.
func (g *Gateway) WithConn(ctx context.Context, fn func(q Querier) error) error {
	conn, err := g.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(conn)
}

// WithTx runs fn inside a transaction on a freshly acquired connection.
// The transaction is committed when fn returns nil and rolled back before the
// connection is released otherwise, panics included.
func (g *Gateway) WithTx(ctx context.Context, fn func(q Querier) error) error {
	conn, err := g.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	// Rollback must still reach the server when the request was cancelled.
	rollbackCtx := context.WithoutCancel(ctx)

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(rollbackCtx); rbErr != nil {
				g.logger.Error("failed to rollback transaction after panic", "panic", p, "error", rbErr)
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(rollbackCtx); rbErr != nil {
			g.logger.Error("failed to rollback transaction", "error", rbErr, "cause", err)
			return fmt.Errorf("%w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Ping acquires a connection and verifies the server answers.
func (g *Gateway) Ping(ctx context.Context) error {
	conn, err := g.acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return conn.Ping(ctx)
}

// Stats returns pool statistics.
func (g *Gateway) Stats() PoolStats {
	return g.source.Stat()
}

// Health returns database health information.
func (g *Gateway) Health(ctx context.Context) HealthStatus {
	health := HealthStatus{PoolStats: g.source.Stat()}

	pingCtx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()
	if err := g.Ping(pingCtx); err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
	} else {
		health.Status = "healthy"
	}

	return health
}

// Close closes the underlying pool. It must be called once, at shutdown.
func (g *Gateway) Close() {
	g.source.Close()
	g.logger.Info("database connection pool closed")
}
