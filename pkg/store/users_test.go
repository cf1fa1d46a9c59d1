package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rutamundo/backend/pkg/auth"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func userRows(users ...User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "avatar", "email", "password_hash", "permissions", "registered_at"})
	for _, u := range users {
		rows.AddRow(u.ID, u.Name, u.Avatar, u.Email, u.PasswordHash, `["ViewUser"]`, u.RegisteredAt)
	}
	return rows
}

func TestUsers_Create(t *testing.T) {
	t.Run("assigns id and registration time", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectExec("INSERT INTO users").
			WillReturnResult(sqlmock.NewResult(0, 1))

		user := &User{
			Name:         "carla",
			Email:        "carla@example.com",
			PasswordHash: "$2a$10$hash",
			Permissions:  auth.DefaultUserPermissions(),
		}
		err := NewUsers(db).Create(context.Background(), user)
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.False(t, user.RegisteredAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectExec("INSERT INTO users").
			WillReturnError(errors.New("unique constraint"))

		err := NewUsers(db).Create(context.Background(), &User{Name: "dup", Email: "dup@example.com"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create user")
	})
}

func TestUsers_FindByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		registered := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("carla@example.com").
			WillReturnRows(userRows(User{
				ID:           "u-1",
				Name:         "carla",
				Email:        "carla@example.com",
				PasswordHash: "$2a$10$hash",
				RegisteredAt: registered,
			}))

		user, err := NewUsers(db).FindByEmail(context.Background(), "carla@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, []auth.PermissionKey{auth.PermissionViewUser}, user.Permissions)
		assert.Equal(t, registered, user.RegisteredAt)
	})

	t.Run("absent", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := NewUsers(db).FindByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, user)
	})
}

func TestUsers_List(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY registered_at").
		WillReturnRows(userRows(
			User{ID: "u-1", Name: "a", Email: "a@example.com"},
			User{ID: "u-2", Name: "b", Email: "b@example.com"},
		))

	users, err := NewUsers(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u-1", users[0].ID)
	assert.Equal(t, "u-2", users[1].ID)
}

func TestUsers_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := NewUsers(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestUsers_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectExec("UPDATE users").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewUsers(db).Update(context.Background(), &User{ID: "u-1", Name: "renamed", Email: "a@example.com"})
		assert.NoError(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectExec("UPDATE users").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewUsers(db).Update(context.Background(), &User{ID: "u-missing"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUsers_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectExec("DELETE FROM users").
			WithArgs("u-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, NewUsers(db).Delete(context.Background(), "u-1"))
	})

	t.Run("missing row", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectExec("DELETE FROM users").
			WithArgs("u-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, NewUsers(db).Delete(context.Background(), "u-missing"), ErrNotFound)
	})
}

func TestCredentialStore_FindByEmail(t *testing.T) {
	t.Run("maps to auth record", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("carla@example.com").
			WillReturnRows(userRows(User{
				ID:           "u-1",
				Name:         "carla",
				Email:        "carla@example.com",
				PasswordHash: "$2a$10$hash",
				RegisteredAt: time.Now().UTC(),
			}))

		record, err := NewCredentialStore(NewUsers(db)).FindByEmail(context.Background(), "carla@example.com")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, "u-1", record.ID)
		assert.Equal(t, "carla", record.Name)
		assert.Equal(t, "$2a$10$hash", record.PasswordHash)
	})

	t.Run("absence is nil without error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WithArgs("ghost@example.com").
			WillReturnError(sql.ErrNoRows)

		record, err := NewCredentialStore(NewUsers(db)).FindByEmail(context.Background(), "ghost@example.com")
		assert.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("database errors propagate", func(t *testing.T) {
		db, mock := setupMockDB(t)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
			WillReturnError(errors.New("connection reset"))

		record, err := NewCredentialStore(NewUsers(db)).FindByEmail(context.Background(), "carla@example.com")
		assert.Error(t, err)
		assert.Nil(t, record)
	})
}
