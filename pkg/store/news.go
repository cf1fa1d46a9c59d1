package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const newsColumns = "id, title, body, registered_at"

// News provides access to persisted news items.
type News struct {
	db *sql.DB
}

// NewNews creates a news store over the database handle.
func NewNews(db *sql.DB) *News {
	return &News{db: db}
}

// Create inserts a new news item.
func (s *News) Create(ctx context.Context, item *NewsItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.RegisteredAt.IsZero() {
		item.RegisteredAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO news (`+newsColumns+`)
		VALUES ($1, $2, $3, $4)
	`, item.ID, item.Title, item.Body, item.RegisteredAt)
	if err != nil {
		return fmt.Errorf("failed to create news item: %w", err)
	}
	return nil
}

// FindByID returns the news item with the given id, or ErrNotFound.
func (s *News) FindByID(ctx context.Context, id string) (*NewsItem, error) {
	var item NewsItem
	err := s.db.QueryRowContext(ctx, "SELECT "+newsColumns+" FROM news WHERE id = $1", id).
		Scan(&item.ID, &item.Title, &item.Body, &item.RegisteredAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query news item: %w", err)
	}
	return &item, nil
}

// List returns all news items, most recent first.
func (s *News) List(ctx context.Context) ([]NewsItem, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+newsColumns+" FROM news ORDER BY registered_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}
	defer rows.Close()

	var items []NewsItem
	for rows.Next() {
		var item NewsItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.RegisteredAt); err != nil {
			return nil, fmt.Errorf("failed to scan news item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Count returns the number of news items.
func (s *News) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count news: %w", err)
	}
	return count, nil
}

// Update overwrites the mutable fields of an existing news item.
func (s *News) Update(ctx context.Context, item *NewsItem) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE news
		SET title = $1, body = $2
		WHERE id = $3
	`, item.Title, item.Body, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update news item: %w", err)
	}
	return requireRowAffected(result)
}

// Delete removes a news item.
func (s *News) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM news WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete news item: %w", err)
	}
	return requireRowAffected(result)
}
