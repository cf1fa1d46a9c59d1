package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const contactColumns = "id, name, email, subject, message, seen, registered_at"

// Contacts provides access to persisted contact messages.
type Contacts struct {
	db *sql.DB
}

// NewContacts creates a contact message store over the database handle.
func NewContacts(db *sql.DB) *Contacts {
	return &Contacts{db: db}
}

// Create inserts a new contact message. New messages start unseen.
func (s *Contacts) Create(ctx context.Context, msg *ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.RegisteredAt.IsZero() {
		msg.RegisteredAt = time.Now().UTC()
	}
	msg.Seen = false

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_messages (`+contactColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.Seen, msg.RegisteredAt)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// FindByID returns the contact message with the given id, or
// ErrNotFound.
func (s *Contacts) FindByID(ctx context.Context, id string) (*ContactMessage, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+contactColumns+" FROM contact_messages WHERE id = $1", id)
	msg, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contact message: %w", err)
	}
	return msg, nil
}

// List returns all contact messages, most recent first.
func (s *Contacts) List(ctx context.Context) ([]ContactMessage, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+contactColumns+" FROM contact_messages ORDER BY registered_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []ContactMessage
	for rows.Next() {
		msg, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		msgs = append(msgs, *msg)
	}
	return msgs, rows.Err()
}

// Count returns the number of contact messages.
func (s *Contacts) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count contact messages: %w", err)
	}
	return count, nil
}

// MarkSeen flags a contact message as handled.
func (s *Contacts) MarkSeen(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "UPDATE contact_messages SET seen = TRUE WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to mark contact message seen: %w", err)
	}
	return requireRowAffected(result)
}

// Delete removes a contact message.
func (s *Contacts) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM contact_messages WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	return requireRowAffected(result)
}

func scanContact(scanner interface {
	Scan(dest ...interface{}) error
}) (*ContactMessage, error) {
	var msg ContactMessage
	err := scanner.Scan(
		&msg.ID,
		&msg.Name,
		&msg.Email,
		&msg.Subject,
		&msg.Message,
		&msg.Seen,
		&msg.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
