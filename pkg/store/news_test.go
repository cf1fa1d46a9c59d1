package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNews_CRUD(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO news").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM news WHERE id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "registered_at"}).
			AddRow("n-1", "New route", "We now fly to Cali", time.Now().UTC()))
	mock.ExpectExec("UPDATE news").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM news").
		WithArgs("n-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	news := NewNews(db)
	ctx := context.Background()

	item := &NewsItem{Title: "New route", Body: "We now fly to Cali"}
	require.NoError(t, news.Create(ctx, item))
	assert.NotEmpty(t, item.ID)

	got, err := news.FindByID(ctx, "n-1")
	require.NoError(t, err)
	assert.Equal(t, "New route", got.Title)

	require.NoError(t, news.Update(ctx, &NewsItem{ID: "n-1", Title: "Updated", Body: "Edited"}))
	require.NoError(t, news.Delete(ctx, "n-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNews_FindByID_Absent(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM news WHERE id").
		WithArgs("n-missing").
		WillReturnError(sql.ErrNoRows)

	item, err := NewNews(db).FindByID(context.Background(), "n-missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, item)
}

func TestNews_List(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM news ORDER BY registered_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "registered_at"}).
			AddRow("n-2", "Newer", "b", time.Now().UTC()).
			AddRow("n-1", "Older", "a", time.Now().UTC()))

	items, err := NewNews(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Newer", items[0].Title)
}
