package auth

import (
	"context"
	"fmt"
)

// CredentialAuthenticator turns a login credential into a signed
// session token. It is the only component in the auth core that
// touches the data-access layer.
type CredentialAuthenticator struct {
	users  UserStore
	hasher PasswordHasher
	codec  *TokenCodec
}

// NewCredentialAuthenticator wires the authenticator from its
// collaborators.
func NewCredentialAuthenticator(users UserStore, hasher PasswordHasher, codec *TokenCodec) *CredentialAuthenticator {
	return &CredentialAuthenticator{
		users:  users,
		hasher: hasher,
		codec:  codec,
	}
}

// Authenticate looks up the user by email, checks the password against
// the stored hash, and mints a token for the projected identity. Any
// step's failure aborts the whole operation; nothing is retried.
func (a *CredentialAuthenticator) Authenticate(ctx context.Context, credential Credential) (string, error) {
	record, err := a.users.FindByEmail(ctx, credential.Email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if record == nil {
		return "", ErrUserNotFound
	}

	// A record with no stored hash never auto-succeeds.
	if record.PasswordHash == "" || !a.hasher.Compare(credential.Password, record.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := a.codec.Issue(record.Identity())
	if err != nil {
		return "", err
	}
	return token, nil
}
