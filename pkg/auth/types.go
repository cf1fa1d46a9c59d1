package auth

import "context"

// Identity is the trusted projection of a user embedded in a token.
// It never carries the password hash. Immutable once issued; the
// authoritative mutable copy lives in the user store.
type Identity struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Permissions []PermissionKey `json:"permissions"`
}

// Credential is the transient login input. Never persisted.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRecord is the persisted superset of Identity held by the user
// store, including the bcrypt password hash.
type UserRecord struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Permissions  []PermissionKey
}

// Identity projects the record down to the fields that may enter a
// token payload. The password hash is dropped here and nowhere later.
func (r *UserRecord) Identity() Identity {
	return Identity{
		ID:          r.ID,
		Email:       r.Email,
		Name:        r.Name,
		Permissions: r.Permissions,
	}
}

// UserStore is the narrow data-access interface the authenticator
// consumes. Absence is reported as (nil, nil), not as an error.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
}
