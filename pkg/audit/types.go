package audit

import "time"

// EventType categorizes an audit event.
type EventType string

const (
	EventTypeLogin         EventType = "auth.login"
	EventTypeLoginFailed   EventType = "auth.login_failed"
	EventTypeAccessDenied  EventType = "auth.access_denied"
	EventTypeUserRegister  EventType = "account.register"
	EventTypeUserUpdate    EventType = "account.update"
	EventTypeUserDelete    EventType = "account.delete"
	EventTypeContentCreate EventType = "content.create"
	EventTypeContentUpdate EventType = "content.update"
	EventTypeContentDelete EventType = "content.delete"
)

// EventStatus is the outcome of the audited action.
type EventStatus string

const (
	EventStatusSuccess EventStatus = "success"
	EventStatusFailure EventStatus = "failure"
	EventStatusDenied  EventStatus = "denied"
)

// Event is a single audit log entry.
type Event struct {
	ID         string      `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	EventType  EventType   `json:"eventType"`
	Status     EventStatus `json:"status"`
	UserID     string      `json:"userId,omitempty"`
	Email      string      `json:"email,omitempty"`
	Resource   string      `json:"resource,omitempty"`
	ResourceID string      `json:"resourceId,omitempty"`
	RequestID  string      `json:"requestId,omitempty"`
	Message    string      `json:"message,omitempty"`
}
