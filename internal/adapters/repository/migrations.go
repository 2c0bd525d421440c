package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	Version int
	Name    string
	// Statements per dialect; postgres covers both pgx and lib/pq.
	Postgres []string
	SQLite   []string
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "users",
		Postgres: []string{`
			CREATE TABLE IF NOT EXISTS users (
				id            TEXT PRIMARY KEY,
				email         TEXT NOT NULL UNIQUE,
				display_name  TEXT NOT NULL DEFAULT '',
				password_hash TEXT NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL,
				updated_at    TIMESTAMPTZ NOT NULL
			)`,
		},
		SQLite: []string{`
			CREATE TABLE IF NOT EXISTS users (
				id            TEXT PRIMARY KEY,
				email         TEXT NOT NULL UNIQUE,
				display_name  TEXT NOT NULL DEFAULT '',
				password_hash TEXT NOT NULL,
				created_at    DATETIME NOT NULL,
				updated_at    DATETIME NOT NULL
			)`,
		},
	},
	{
		Version: 2,
		Name:    "app_snapshots",
		Postgres: []string{`
			CREATE TABLE IF NOT EXISTS app_snapshots (
				user_id    TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				data       JSONB NOT NULL,
				version    INTEGER NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
		},
		SQLite: []string{`
			CREATE TABLE IF NOT EXISTS app_snapshots (
				user_id    TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				data       TEXT NOT NULL,
				version    INTEGER NOT NULL,
				updated_at DATETIME NOT NULL
			)`,
		},
	},
}

// Migrate applies every migration not yet recorded in schema_migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var count int
		if err := db.GetContext(ctx, &count, db.Rebind("SELECT COUNT(*) FROM schema_migrations WHERE version = ?"), m.Version); err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		if err := applyMigration(ctx, db, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		log.Printf("[DB] applied migration %d (%s)", m.Version, m.Name)
	}

	return nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, m migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	statements := m.Postgres
	if isSQLite(db) {
		statements = m.SQLite
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?)"), m.Version, m.Name); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}
