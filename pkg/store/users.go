package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rutamundo/backend/pkg/auth"
)

const userColumns = "id, name, avatar, email, password_hash, permissions, registered_at"

// Users provides access to persisted user records.
type Users struct {
	db *sql.DB
}

// NewUsers creates a user store over the database handle.
func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// Create inserts a new user. A missing ID or registration time is
// filled in before the insert.
func (s *Users) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.RegisteredAt.IsZero() {
		user.RegisteredAt = time.Now().UTC()
	}

	permissions, err := json.Marshal(user.Permissions)
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Name, user.Avatar, user.Email, user.PasswordHash, string(permissions), user.RegisteredAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail returns the user with the given email, or ErrNotFound.
func (s *Users) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

// FindByName returns the user with the given name, or ErrNotFound.
func (s *Users) FindByName(ctx context.Context, name string) (*User, error) {
	return s.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE name = $1", name)
}

// FindByID returns the user with the given id, or ErrNotFound.
func (s *Users) FindByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (s *Users) findOne(ctx context.Context, query string, arg interface{}) (*User, error) {
	row := s.db.QueryRowContext(ctx, query, arg)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// List returns all users ordered by registration time.
func (s *Users) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY registered_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// Count returns the number of user records.
func (s *Users) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// Update overwrites the mutable fields of an existing user.
func (s *Users) Update(ctx context.Context, user *User) error {
	permissions, err := json.Marshal(user.Permissions)
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, avatar = $2, email = $3, password_hash = $4, permissions = $5
		WHERE id = $6
	`, user.Name, user.Avatar, user.Email, user.PasswordHash, string(permissions), user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRowAffected(result)
}

// Delete removes a user record.
func (s *Users) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireRowAffected(result)
}

// scanUser scans a user from a database row
func scanUser(scanner interface {
	Scan(dest ...interface{}) error
}) (*User, error) {
	var user User
	var permissionsJSON string

	err := scanner.Scan(
		&user.ID,
		&user.Name,
		&user.Avatar,
		&user.Email,
		&user.PasswordHash,
		&permissionsJSON,
		&user.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}

	user.Permissions = []auth.PermissionKey{}
	if permissionsJSON != "" {
		if err := json.Unmarshal([]byte(permissionsJSON), &user.Permissions); err != nil {
			user.Permissions = []auth.PermissionKey{}
		}
	}
	return &user, nil
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
