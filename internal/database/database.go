package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gcanale/agendabot/internal/database/migrations"
)

type DB struct {
	*sql.DB
	loc *time.Location
}

// New opens the event store at dbPath and runs pending migrations. Dates in
// queries such as GetEventsByDate are interpreted in loc.
func New(dbPath string, loc *time.Location) (*DB, error) {
	// WAL for better concurrency, busy timeout to wait instead of failing
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection, so the pool must be
	// pinned to a single one or queries would see an empty schema.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if loc == nil {
		loc = time.UTC
	}

	return &DB{DB: db, loc: loc}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}
