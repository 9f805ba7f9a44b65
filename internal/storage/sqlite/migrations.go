package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version string
	stmts   []string
}

// migrations are applied in order and recorded in schema_migrations
var migrations = []migration{
	{
		version: "20250801000000_create_users",
		stmts: []string{`
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL COLLATE NOCASE,
	email TEXT NOT NULL COLLATE NOCASE,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`,
			`CREATE UNIQUE INDEX index_users_on_username ON users (username)`,
			`CREATE UNIQUE INDEX index_users_on_email ON users (email)`,
		},
	},
	{
		version: "20250805001128_create_games",
		stmts: []string{`
CREATE TABLE games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	max_participants INTEGER NOT NULL,
	min_participants INTEGER NOT NULL,
	started_at DATETIME,
	completed_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	CONSTRAINT max_participants_positive CHECK (max_participants > 0),
	CONSTRAINT min_participants_positive CHECK (min_participants > 0),
	CONSTRAINT max_gte_min_participants CHECK (max_participants >= min_participants),
	CONSTRAINT completed_requires_started CHECK (completed_at IS NULL OR started_at IS NOT NULL)
)`,
			`CREATE UNIQUE INDEX index_games_on_name ON games (name)`,
		},
	},
}

// Migrate applies any pending migrations. It is safe to call on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY
)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		applied, err := isApplied(ctx, db, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}

func isApplied(ctx context.Context, db *sql.DB, version string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check migration %s: %w", version, err)
	}
	return n > 0, nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", m.version, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range m.stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %s: %w", m.version, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version) VALUES (?)`, m.version,
	); err != nil {
		return fmt.Errorf("record migration %s: %w", m.version, err)
	}
	return tx.Commit()
}
