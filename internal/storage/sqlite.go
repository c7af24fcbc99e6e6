// Package storage implements the combined transaction store on SQLite.
// The database lives in memory: the store is process-lifetime state, not
// a persistence layer, and every session starts empty.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements service.Storage using an in-memory SQLite
// database. Dedup and ordering are schema properties: a unique hash
// column discards duplicates and reads order by date then insert id.
type SQLiteStore struct {
	db *sql.DB
}

// NewMemoryStore opens a fresh in-memory store and applies the schema.
func NewMemoryStore() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	// An in-memory database exists per connection, so the pool must be
	// pinned to exactly one connection that is never recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database, discarding all session state.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
