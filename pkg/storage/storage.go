// Package storage opens the bun database the translation backend persists
// into. It maps a driver name and DSN onto the right sql driver and bun
// dialect, so cmd/lingo-server and tests share one opening path.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Driver identifiers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MemoryDSN is the sqlite DSN backing the memory driver. The shared cache
// keeps every connection of the pool on the same in-memory database.
const MemoryDSN = "file::memory:?cache=shared"

// Config selects the persistence driver. DSN is required for sqlite and
// postgres; the memory driver ignores it.
type Config struct {
	Driver string
	DSN    string
}

// UnknownDriverError reports a driver name Open does not recognize.
type UnknownDriverError struct {
	Driver string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("storage: unknown driver %q", e.Driver)
}

// Open returns a bun DB for the configured driver. An empty driver opens the
// memory database. Callers own closing the returned handle.
func Open(cfg Config) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	dsn := strings.TrimSpace(cfg.DSN)

	switch driver {
	case "", DriverMemory:
		sqldb, err := sql.Open("sqlite3", MemoryDSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open memory database: %w", err)
		}
		// A second pool connection would see its own empty database once
		// the first one idles out, so the pool is pinned to one.
		sqldb.SetMaxOpenConns(1)
		sqldb.SetMaxIdleConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil

	case DriverSQLite:
		if dsn == "" {
			return nil, fmt.Errorf("storage: sqlite driver requires a DSN")
		}
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite database: %w", err)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil

	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("storage: postgres driver requires a DSN")
		}
		sqldb, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres database: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	}

	return nil, &UnknownDriverError{Driver: driver}
}
