// Package store implements SQL-backed persistence for users, trips,
// news items, and contact messages. Queries use $N placeholders and
// work against both PostgreSQL and SQLite.
package store
