package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrPoolExhausted is returned when no connection became free within the
// acquisition timeout.
var ErrPoolExhausted = errors.New("connection pool exhausted")

// ErrStorageUnavailable is returned when every acquisition attempt failed
// with a transient error.
var ErrStorageUnavailable = errors.New("storage unavailable")

// errStaleConnection marks a pooled connection that failed its pre-use probe.
var errStaleConnection = errors.New("stale pooled connection")

// Policy controls how connections are acquired.
type Policy struct {
	// AcquireTimeout bounds the wait for a free connection on each attempt.
	AcquireTimeout time.Duration
	// PrePing probes every connection before handing it out.
	PrePing bool
	// RetryAttempts is the total number of attempts, first one included.
	RetryAttempts int
	RetryInitial  time.Duration
	RetryMax      time.Duration
}

// DefaultPolicy mirrors the defaults in config.
func DefaultPolicy() Policy {
	return Policy{
		AcquireTimeout: 30 * time.Second,
		PrePing:        true,
		RetryAttempts:  3,
		RetryInitial:   4 * time.Second,
		RetryMax:       10 * time.Second,
	}
}

func (p Policy) normalized() Policy {
	if p.AcquireTimeout <= 0 {
		p.AcquireTimeout = 30 * time.Second
	}
	if p.RetryAttempts < 1 {
		p.RetryAttempts = 1
	}
	if p.RetryInitial <= 0 {
		p.RetryInitial = 4 * time.Second
	}
	if p.RetryMax < p.RetryInitial {
		p.RetryMax = p.RetryInitial
	}
	return p
}

// newBackOff builds the delay schedule: RetryInitial, doubling, capped at
// RetryMax, no jitter.
func (p Policy) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.RetryInitial
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = p.RetryMax
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// acquire obtains a connection, retrying transient failures.
func (g *Gateway) acquire(ctx context.Context) (Conn, error) {
	var (
		conn    Conn
		attempt int
	)

	op := func() error {
		attempt++
		c, err := g.acquireOnce(ctx)
		if err != nil {
			if IsTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		conn = c
		return nil
	}

	notify := func(err error, delay time.Duration) {
		g.metrics.AcquireRetries.Inc()
		g.logger.Warn("transient storage failure, retrying connection acquisition",
			"attempt", attempt,
			"maxAttempts", g.policy.RetryAttempts,
			"delay", delay.String(),
			"error", err,
		)
	}

	schedule := backoff.WithContext(
		backoff.WithMaxRetries(g.policy.newBackOff(), uint64(g.policy.RetryAttempts-1)),
		ctx,
	)

	err := backoff.RetryNotify(op, schedule, notify)
	if err == nil {
		return conn, nil
	}

	switch {
	case errors.Is(err, ErrPoolExhausted):
		g.metrics.AcquireFailures.WithLabelValues("exhausted").Inc()
		g.logger.Error("connection pool exhausted", "timeout", g.policy.AcquireTimeout.String(), "pool", g.source.Stat())
		return nil, err
	case ctx.Err() != nil:
		g.metrics.AcquireFailures.WithLabelValues("cancelled").Inc()
		return nil, fmt.Errorf("acquiring connection: %w", ctx.Err())
	case IsTransient(err):
		g.metrics.AcquireFailures.WithLabelValues("unavailable").Inc()
		g.logger.Error("storage unavailable after retries", "attempts", attempt, "error", err)
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrStorageUnavailable, attempt, err)
	default:
		g.metrics.AcquireFailures.WithLabelValues("other").Inc()
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
}

// acquireOnce makes a single bounded attempt, probing the connection when
// pre-ping is enabled.
func (g *Gateway) acquireOnce(ctx context.Context) (Conn, error) {
	g.metrics.AcquireAttempts.Inc()
	start := time.Now()

	waitCtx, cancel := context.WithTimeout(ctx, g.policy.AcquireTimeout)
	defer cancel()

	conn, err := g.source.Acquire(waitCtx)
	g.metrics.AcquireWait.Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() == nil && errors.Is(waitCtx.Err(), context.DeadlineExceeded) && !IsTransient(err) {
			return nil, fmt.Errorf("%w: no connection available within %s", ErrPoolExhausted, g.policy.AcquireTimeout)
		}
		return nil, err
	}

	if g.policy.PrePing {
		if err := conn.Ping(ctx); err != nil {
			conn.Discard()
			return nil, fmt.Errorf("%w: %w", errStaleConnection, err)
		}
	}

	return conn, nil
}

// IsTransient reports whether err is a connectivity failure worth retrying:
// refused or reset sockets, session establishment timeouts, stale pooled
// connections and server-side "not accepting connections right now" codes.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errStaleConnection) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	// A bare context error is either the caller giving up or the pool wait
	// running out; neither is fixed by dialing again.
	if errors.Is(err, ErrPoolExhausted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"):
			return true
		case pgErr.Code == "53300", pgErr.Code == "57P01", pgErr.Code == "57P02", pgErr.Code == "57P03":
			return true
		}
		return false
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}
