// Package testsupport carries shared helpers for integration tests: in-memory
// databases with the backend schema, language seeding, fixtures, and sample
// image payloads.
package testsupport

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-lingo/internal/catalog"
	"github.com/goliatone/go-lingo/pkg/storage"
)

// NewSQLiteMemoryDB opens the shared in-memory sqlite database. Close it
// before opening another one: the shared cache keeps state alive until the
// last connection goes away.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", storage.MemoryDSN)
}

// NewBunDB opens an in-memory bun database with the full backend schema in
// place. Callers own closing it, which drops the database.
func NewBunDB(ctx context.Context) (*bun.DB, error) {
	db, err := storage.Open(storage.Config{Driver: storage.DriverMemory})
	if err != nil {
		return nil, err
	}
	if err := storage.Bootstrap(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// SeedLanguages inserts the built-in language catalog, matching what a fresh
// deployment serves.
func SeedLanguages(ctx context.Context, db *bun.DB) error {
	for _, language := range catalog.DefaultLanguages() {
		if _, err := db.NewInsert().Model(language).Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
