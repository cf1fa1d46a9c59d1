package store

import (
	"context"
	"errors"

	"github.com/rutamundo/backend/pkg/auth"
)

// CredentialStore adapts Users to the auth core's narrow lookup
// interface. Absence is reported as (nil, nil): the authenticator owns
// the decision of what a missing user means.
type CredentialStore struct {
	users *Users
}

// NewCredentialStore creates the adapter.
func NewCredentialStore(users *Users) *CredentialStore {
	return &CredentialStore{users: users}
}

// FindByEmail implements auth.UserStore.
func (c *CredentialStore) FindByEmail(ctx context.Context, email string) (*auth.UserRecord, error) {
	user, err := c.users.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &auth.UserRecord{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Permissions:  user.Permissions,
	}, nil
}
