package database

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
)

// Options configures the pgx pool behind a Gateway.
type Options struct {
	URL string

	// PoolSize connections are kept open; MaxOverflow more may be opened under
	// load and are closed again after OverflowIdle without use.
	PoolSize     int32
	MaxOverflow  int32
	OverflowIdle time.Duration

	PoolTimeout       time.Duration
	PoolRecycle       time.Duration
	PrePing           bool
	ConnectTimeout    time.Duration
	KeepAlive         time.Duration
	HealthCheckPeriod time.Duration
	StatementTimeout  time.Duration

	RetryAttempts int
	RetryInitial  time.Duration
	RetryMax      time.Duration

	TraceSQL bool
}

// Policy returns the acquisition policy described by o.
func (o Options) Policy() Policy {
	return Policy{
		AcquireTimeout: o.PoolTimeout,
		PrePing:        o.PrePing,
		RetryAttempts:  o.RetryAttempts,
		RetryInitial:   o.RetryInitial,
		RetryMax:       o.RetryMax,
	}
}

// poolConfig translates o into a pgxpool configuration.
func (o Options) poolConfig(logger *slog.Logger) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(o.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	poolCfg.MinConns = o.PoolSize
	poolCfg.MaxConns = o.PoolSize + o.MaxOverflow
	if o.PoolRecycle > 0 {
		poolCfg.MaxConnLifetime = o.PoolRecycle
	}
	if o.OverflowIdle > 0 {
		poolCfg.MaxConnIdleTime = o.OverflowIdle
	}
	if o.HealthCheckPeriod > 0 {
		poolCfg.HealthCheckPeriod = o.HealthCheckPeriod
	}

	connCfg := poolCfg.ConnConfig
	if o.ConnectTimeout > 0 {
		connCfg.ConnectTimeout = o.ConnectTimeout
	}
	dialer := &net.Dialer{
		Timeout:   o.ConnectTimeout,
		KeepAlive: o.KeepAlive,
	}
	connCfg.DialFunc = dialer.DialContext

	if o.StatementTimeout > 0 {
		connCfg.RuntimeParams["statement_timeout"] = strconv.FormatInt(o.StatementTimeout.Milliseconds(), 10)
	}

	if o.TraceSQL {
		connCfg.Tracer = &tracelog.TraceLog{
			Logger:   slogTraceLogger(logger),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	return poolCfg, nil
}

// Open builds the pool, wraps it in a Gateway and verifies the server is
// reachable through the gateway's retry policy.
func Open(ctx context.Context, opts Options, metrics *Metrics, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := opts.poolConfig(logger)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	gw := NewGateway(&poolSource{pool: pool}, opts.Policy(), metrics, logger)

	if err := gw.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.Info("database connection pool established",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"poolSize", opts.PoolSize,
		"maxOverflow", opts.MaxOverflow,
		"poolTimeout", opts.PoolTimeout.String(),
		"poolRecycle", opts.PoolRecycle.String(),
	)

	return gw, nil
}

// poolSource adapts *pgxpool.Pool to Source.
type poolSource struct {
	pool *pgxpool.Pool
}

func (s *poolSource) Acquire(ctx context.Context) (Conn, error) {
	c, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &poolConn{conn: c}, nil
}

func (s *poolSource) Stat() PoolStats {
	stat := s.pool.Stat()
	return PoolStats{
		TotalConns:        stat.TotalConns(),
		AcquiredConns:     stat.AcquiredConns(),
		IdleConns:         stat.IdleConns(),
		ConstructingConns: stat.ConstructingConns(),
		MaxConns:          stat.MaxConns(),
	}
}

func (s *poolSource) Close() {
	s.pool.Close()
}

// poolConn adapts *pgxpool.Conn to Conn.
type poolConn struct {
	conn *pgxpool.Conn
}

func (c *poolConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.conn.Exec(ctx, sql, args...)
}

func (c *poolConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

func (c *poolConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.conn.QueryRow(ctx, sql, args...)
}

func (c *poolConn) Begin(ctx context.Context) (pgx.Tx, error) {
	return c.conn.Begin(ctx)
}

func (c *poolConn) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

func (c *poolConn) Release() {
	c.conn.Release()
}

// Discard closes the underlying connection; pgxpool destroys closed
// connections on release instead of returning them to the idle set.
func (c *poolConn) Discard() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = c.conn.Conn().Close(ctx)
	c.conn.Release()
}

// slogTraceLogger bridges pgx query tracing to slog.
func slogTraceLogger(logger *slog.Logger) tracelog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		attrs := make([]slog.Attr, 0, len(data))
		for k, v := range data {
			attrs = append(attrs, slog.Any(k, v))
		}
		logger.LogAttrs(ctx, slogLevel(level), "pgx: "+msg, attrs...)
	})
}

func slogLevel(level tracelog.LogLevel) slog.Level {
	switch level {
	case tracelog.LogLevelError:
		return slog.LevelError
	case tracelog.LogLevelWarn:
		return slog.LevelWarn
	case tracelog.LogLevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
