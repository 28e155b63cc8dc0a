// Package db opens the reporting database connection. Backends register a
// Driver from their init functions; importing ofods/internal/db/all enables
// every built-in backend.
//
// The connection is acquired once per run and released on every exit path
// by WithConn.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Config identifies the database to connect to.
type Config struct {
	// Driver is a registered backend name (sqlserver, postgres, mysql, sqlite).
	Driver string

	// DSN is passed to the backend verbatim when set.
	DSN string

	// Server and Database are used by backends that can build a DSN from
	// them (sqlserver).
	Server   string
	Database string
}

// Driver describes one backend.
type Driver struct {
	// SQLDriver is the database/sql driver name passed to sql.Open.
	SQLDriver string

	// DSN builds the connection string for cfg. It should fail on obviously
	// invalid settings before a connection is attempted.
	DSN func(cfg Config) (string, error)

	// Code extracts the backend error code from err, if err came from this
	// backend.
	Code func(err error) (string, bool)

	// Setup tunes a freshly opened pool (optional).
	Setup func(conn *sql.DB)
}

var (
	mu      sync.RWMutex
	drivers = map[string]Driver{}
)

// Register registers (or replaces) the backend for kind.
func Register(kind string, d Driver) {
	mu.Lock()
	defer mu.Unlock()
	drivers[kind] = d
}

// Registered returns the registered backend names, sorted.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(drivers))
	for k := range drivers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func lookup(kind string) (Driver, bool) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := drivers[kind]
	return d, ok
}

// ErrUnknownDriver is returned by Open for an unregistered backend.
var ErrUnknownDriver = errors.New("db: unknown driver")

// Open opens and pings a connection pool for cfg and returns it with a close
// function. The close function is safe to call once.
func Open(ctx context.Context, cfg Config) (*sql.DB, func() error, error) {
	d, ok := lookup(cfg.Driver)
	if !ok {
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownDriver, cfg.Driver)
	}
	dsn := cfg.DSN
	switch {
	case d.DSN != nil:
		built, err := d.DSN(cfg)
		if err != nil {
			return nil, nil, Wrap("dsn", err)
		}
		dsn = built
	case dsn == "":
		return nil, nil, Wrap("dsn", fmt.Errorf("driver %s needs an explicit dsn", cfg.Driver))
	}

	conn, err := sql.Open(d.SQLDriver, dsn)
	if err != nil {
		return nil, nil, Wrap("open", err)
	}
	if d.Setup != nil {
		d.Setup(conn)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, nil, Wrap("connect", err)
	}
	return conn, conn.Close, nil
}

// WithConn opens a connection for cfg, runs fn with it, and closes it
// whatever fn returns. A close failure is reported only when fn succeeded.
func WithConn(ctx context.Context, cfg Config, fn func(ctx context.Context, conn *sql.DB) error) (err error) {
	conn, closeFn, err := Open(ctx, cfg)
	if err != nil {
		return err
	}
	log.Printf("db: connected driver=%s", cfg.Driver)
	defer func() {
		cerr := closeFn()
		if cerr != nil && err == nil {
			err = Wrap("close", cerr)
		}
		log.Printf("db: connection closed driver=%s", cfg.Driver)
	}()
	return fn(ctx, conn)
}
