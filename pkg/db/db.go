package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

// timestampLayout is how the store writes created_at columns
// (datetime('now', 'localtime') in base.sql).
const timestampLayout = "2006-01-02 15:04:05"

// ErrNotFound indicates that a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// Database manages the sqlite connection. It holds no row cache: screens
// re-fetch after every mutation, so each call returns a fresh snapshot.
type Database struct {
	conn *sql.DB
}

// NewDatabase connects to the sqlite database at the given filename and
// initializes the structure if not present. Foreign keys are enforced so
// that appending a timing for a deleted task fails instead of orphaning
// the row.
func NewDatabase(ctx context.Context, filename string) (*Database, error) {
	conn, err := sql.Open("sqlite3", filename+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	database := Database{conn: conn}

	if err := database.initialize(ctx); err != nil {
		return nil, err
	}

	return &database, nil
}

func (d *Database) initialize(ctx context.Context) error {
	// run idempotent setup sql to create empty tables if they don't exist
	if _, err := d.conn.ExecContext(ctx, baseSQL); err != nil {
		return fmt.Errorf("error running base sql: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.conn.Close()
}

// parseTimestamp converts a created_at column into a local time. The store
// writes the layout itself, so a parse failure means a hand-edited file; the
// zero time is returned rather than failing the whole read.
func parseTimestamp(raw string) *time.Time {
	t, err := time.ParseInLocation(timestampLayout, raw, time.Local)
	if err != nil {
		t = time.Time{}
	}

	return &t
}
