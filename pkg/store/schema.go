package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema returns the DDL for all tables. The statements are portable
// across PostgreSQL and SQLite: ids are application-generated UUIDs
// and JSON-valued columns are stored as TEXT.
func Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			avatar TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			permissions TEXT NOT NULL DEFAULT '[]',
			registered_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_users_name ON users(name)`,
		`CREATE TABLE IF NOT EXISTS trips (
			id TEXT PRIMARY KEY,
			destination TEXT NOT NULL,
			summary TEXT NOT NULL,
			travel_date TEXT NOT NULL,
			images TEXT NOT NULL DEFAULT '[]',
			registered_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS news (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			registered_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			seen BOOLEAN NOT NULL DEFAULT FALSE,
			registered_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contact_messages_seen ON contact_messages(seen)`,
	}
}

// EnsureSchema creates all tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range Schema() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
