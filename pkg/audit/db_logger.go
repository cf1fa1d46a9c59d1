package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rutamundo/backend/pkg/contextkeys"
	"github.com/rutamundo/backend/pkg/observability"
)

// Logger records audit events.
type Logger interface {
	Log(ctx context.Context, event *Event) error
}

// DBLogger writes audit events to the audit_logs table.
type DBLogger struct {
	db     *sql.DB
	logger *observability.Logger
}

// NewDBLogger creates a database-backed audit logger and ensures the
// audit_logs table exists.
func NewDBLogger(db *sql.DB, logger *observability.Logger) (*DBLogger, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	l := &DBLogger{db: db, logger: logger}
	if err := l.ensureTable(); err != nil {
		return nil, fmt.Errorf("failed to ensure audit_logs table: %w", err)
	}
	return l, nil
}

func (l *DBLogger) ensureTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS audit_logs (
		id TEXT PRIMARY KEY,
		timestamp TIMESTAMP NOT NULL,
		event_type TEXT NOT NULL,
		status TEXT NOT NULL,
		user_id TEXT,
		email TEXT,
		resource TEXT,
		resource_id TEXT,
		request_id TEXT,
		message TEXT
	)`
	_, err := l.db.Exec(query)
	return err
}

// Log inserts the event. A missing ID or timestamp is filled in.
func (l *DBLogger) Log(ctx context.Context, event *Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = contextkeys.RequestIDFrom(ctx)
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO audit_logs (
			id, timestamp, event_type, status,
			user_id, email, resource, resource_id,
			request_id, message
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		event.ID, event.Timestamp, event.EventType, event.Status,
		event.UserID, event.Email, event.Resource, event.ResourceID,
		event.RequestID, event.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

// Record logs the event and swallows failures after logging them.
// Handlers use this so an audit outage never breaks a request.
func (l *DBLogger) Record(ctx context.Context, event *Event) {
	if err := l.Log(ctx, event); err != nil {
		l.logger.ForRequest(ctx).
			WithError(err).
			WithField("event_type", string(event.EventType)).
			Warn("failed to record audit event")
	}
}

// LoginSucceeded records a successful credential login.
func (l *DBLogger) LoginSucceeded(ctx context.Context, userID, email string) {
	l.Record(ctx, &Event{
		EventType: EventTypeLogin,
		Status:    EventStatusSuccess,
		UserID:    userID,
		Email:     email,
	})
}

// LoginFailed records a rejected credential login. No user ID is
// recorded since the caller was not identified.
func (l *DBLogger) LoginFailed(ctx context.Context, email, reason string) {
	l.Record(ctx, &Event{
		EventType: EventTypeLoginFailed,
		Status:    EventStatusFailure,
		Email:     email,
		Message:   reason,
	})
}

// UserRegistered records a new account creation.
func (l *DBLogger) UserRegistered(ctx context.Context, userID, email string) {
	l.Record(ctx, &Event{
		EventType:  EventTypeUserRegister,
		Status:     EventStatusSuccess,
		UserID:     userID,
		Email:      email,
		Resource:   "user",
		ResourceID: userID,
	})
}

// UserDeleted records an account deletion performed by actorID.
func (l *DBLogger) UserDeleted(ctx context.Context, actorID, targetID string) {
	l.Record(ctx, &Event{
		EventType:  EventTypeUserDelete,
		Status:     EventStatusSuccess,
		UserID:     actorID,
		Resource:   "user",
		ResourceID: targetID,
	})
}

// ContentChanged records a mutation on a content resource (trip, news
// item, contact message).
func (l *DBLogger) ContentChanged(ctx context.Context, eventType EventType, actorID, resource, resourceID string) {
	l.Record(ctx, &Event{
		EventType:  eventType,
		Status:     EventStatusSuccess,
		UserID:     actorID,
		Resource:   resource,
		ResourceID: resourceID,
	})
}
