// Package sqlite implements the persistence repositories over a SQLite
// database using the pure Go modernc.org driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/example/resort-backoffice/internal/persistence"
	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB handle with transaction and migration helpers shared by
// the repositories.
type DB struct {
	db *sql.DB
}

// Open establishes a connection to the SQLite database identified by dsn.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// modernc's driver serializes writes; a single connection avoids
	// SQLITE_BUSY churn under concurrent bulk operations.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the underlying database handle.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Ping verifies the database connection.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS staff (
		id           TEXT PRIMARY KEY,
		tenant_id    TEXT NOT NULL,
		display_name TEXT NOT NULL,
		position     TEXT NOT NULL DEFAULT '',
		department   TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS shifts (
		id            TEXT PRIMARY KEY,
		tenant_id     TEXT NOT NULL,
		staff_id      TEXT NOT NULL,
		staff_name    TEXT NOT NULL,
		shift_date    TEXT NOT NULL,
		start_minutes INTEGER NOT NULL,
		end_minutes   INTEGER NOT NULL,
		position      TEXT NOT NULL DEFAULT '',
		department    TEXT NOT NULL DEFAULT '',
		location      TEXT NOT NULL DEFAULT '',
		notes         TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL,
		hourly_rate   REAL NOT NULL DEFAULT 0,
		version       INTEGER NOT NULL DEFAULT 1,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		CHECK (end_minutes > start_minutes)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shifts_tenant_date ON shifts (tenant_id, shift_date)`,
	`CREATE INDEX IF NOT EXISTS idx_shifts_tenant_staff ON shifts (tenant_id, staff_id)`,
	`CREATE INDEX IF NOT EXISTS idx_staff_tenant ON staff (tenant_id)`,
}

// Migrate applies the embedded schema statements, tracking progress in a
// schema_migrations table so re-runs are no-ops.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("sqlite: create schema_migrations: %w", err)
	}

	var current sql.NullInt64
	if err := d.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	for i, stmt := range migrations {
		version := int64(i + 1)
		if current.Valid && version <= current.Int64 {
			continue
		}
		if err := d.WithTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("sqlite: apply migration %d: %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
				return fmt.Errorf("sqlite: record migration %d: %w", version, err)
			}
			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}

// WithTransaction executes fn inside a transaction, rolling back on error and
// committing otherwise.
func (d *DB) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("sqlite: transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit transaction: %w", err)
	}
	return nil
}

// mapError translates driver errors into persistence sentinels so callers can
// branch with errors.Is.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.ErrNotFound
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", persistence.ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", persistence.ErrForeignKeyViolation, err)
	case strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", persistence.ErrConstraintViolation, err)
	}
	return err
}
