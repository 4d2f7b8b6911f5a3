// Package databasetest provides an in-memory connection source backed by
// pgxmock for exercising code that runs on a database.Gateway.
package databasetest

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/daap14/liga/internal/database"
)

// Conn is a mock connection that counts how it was handed back.
type Conn struct {
	pgxmock.PgxConnIface

	released  atomic.Int32
	discarded atomic.Int32
}

// Release records a return to the pool.
func (c *Conn) Release() { c.released.Add(1) }

// Discard records a connection being thrown away.
func (c *Conn) Discard() { c.discarded.Add(1) }

// Released returns how many times Release was called.
func (c *Conn) Released() int { return int(c.released.Load()) }

// Discarded returns how many times Discard was called.
func (c *Conn) Discarded() int { return int(c.discarded.Load()) }

// NewConn creates a Conn over a fresh pgxmock connection. Every Ping must be
// matched by an ExpectPing.
func NewConn(t testing.TB) *Conn {
	t.Helper()

	mock, err := pgxmock.NewConn()
	if err != nil {
		t.Fatalf("creating pgxmock connection: %v", err)
	}
	return &Conn{PgxConnIface: mock}
}

// Source is a database.Source whose behaviour is scripted by the test.
// Errors queued in Errs are returned by successive Acquire calls before
// Conn is handed out. AcquireFunc, when set, replaces both.
type Source struct {
	Conn        *Conn
	Errs        []error
	AcquireFunc func(ctx context.Context) (database.Conn, error)
	Stats       database.PoolStats

	mu     sync.Mutex
	calls  int
	closed bool
}

// Acquire implements database.Source.
func (s *Source) Acquire(ctx context.Context) (database.Conn, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()

	if s.AcquireFunc != nil {
		return s.AcquireFunc(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= len(s.Errs) {
		return nil, s.Errs[n-1]
	}
	return s.Conn, nil
}

// Stat implements database.Source.
func (s *Source) Stat() database.PoolStats { return s.Stats }

// Close implements database.Source.
func (s *Source) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Calls returns the number of Acquire calls so far.
func (s *Source) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// FastPolicy is a single-attempt policy with no pre-ping, suited to
// repository tests.
func FastPolicy() database.Policy {
	return database.Policy{
		AcquireTimeout: time.Second,
		RetryAttempts:  1,
		RetryInitial:   time.Millisecond,
		RetryMax:       time.Millisecond,
	}
}

// New returns a Gateway over a single mock connection together with the mock
// for setting expectations. Unmet expectations fail the test at cleanup.
func New(t testing.TB) (*database.Gateway, pgxmock.PgxConnIface) {
	t.Helper()

	conn := NewConn(t)
	gw := database.NewGateway(&Source{Conn: conn}, FastPolicy(), nil, nil)

	t.Cleanup(func() {
		if err := conn.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet database expectations: %v", err)
		}
	})

	return gw, conn.PgxConnIface
}
