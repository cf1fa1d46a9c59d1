package store

import (
	"errors"
	"time"

	"github.com/rutamundo/backend/pkg/auth"
)

// ErrNotFound is returned by lookups for absent records.
var ErrNotFound = errors.New("record not found")

// User is the persisted user record. PasswordHash is never serialized
// into API responses.
type User struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Avatar       string               `json:"avatar,omitempty"`
	Email        string               `json:"email"`
	PasswordHash string               `json:"-"`
	Permissions  []auth.PermissionKey `json:"permissions"`
	RegisteredAt time.Time            `json:"registeredAt"`
}

// Trip is a published travel destination entry.
type Trip struct {
	ID           string    `json:"id"`
	Destination  string    `json:"destination"`
	Summary      string    `json:"summary"`
	TravelDate   string    `json:"travelDate"`
	Images       []string  `json:"images"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// NewsItem is a site news entry.
type NewsItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// ContactMessage is a message submitted through the public contact
// form.
type ContactMessage struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	Seen         bool      `json:"seen"`
	RegisteredAt time.Time `json:"registeredAt"`
}
