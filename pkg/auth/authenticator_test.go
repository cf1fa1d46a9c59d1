package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	records map[string]*UserRecord
	err     error
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*UserRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[email], nil
}

func newTestAuthenticator(t *testing.T, records map[string]*UserRecord) (*CredentialAuthenticator, *TokenCodec) {
	t.Helper()
	codec := NewTokenCodec(testSecret, time.Hour)
	hasher := NewBcryptHasher(bcrypt.MinCost)
	return NewCredentialAuthenticator(&fakeUserStore{records: records}, hasher, codec), codec
}

func storedUser(t *testing.T, password string) *UserRecord {
	t.Helper()
	hashed, err := NewBcryptHasher(bcrypt.MinCost).Hash(password)
	require.NoError(t, err)
	return &UserRecord{
		ID:           "u1",
		Email:        "ana@example.com",
		Name:         "ana",
		PasswordHash: hashed,
		Permissions:  []PermissionKey{PermissionViewUser},
	}
}

func TestCredentialAuthenticator_Success(t *testing.T) {
	record := storedUser(t, "sup3rsecret")
	authn, codec := newTestAuthenticator(t, map[string]*UserRecord{record.Email: record})

	token, err := authn.Authenticate(context.Background(), Credential{
		Email:    "ana@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	identity, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, record.Identity(), identity)
}

func TestCredentialAuthenticator_UserNotFound(t *testing.T) {
	authn, _ := newTestAuthenticator(t, nil)

	token, err := authn.Authenticate(context.Background(), Credential{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, token)
}

func TestCredentialAuthenticator_WrongPassword(t *testing.T) {
	record := storedUser(t, "sup3rsecret")
	authn, _ := newTestAuthenticator(t, map[string]*UserRecord{record.Email: record})

	token, err := authn.Authenticate(context.Background(), Credential{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token, "no token may be produced on credential failure")
}

func TestCredentialAuthenticator_EmptyStoredHashNeverMatches(t *testing.T) {
	record := storedUser(t, "sup3rsecret")
	record.PasswordHash = ""
	authn, _ := newTestAuthenticator(t, map[string]*UserRecord{record.Email: record})

	_, err := authn.Authenticate(context.Background(), Credential{
		Email:    "ana@example.com",
		Password: "",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCredentialAuthenticator_StoreErrorPropagates(t *testing.T) {
	codec := NewTokenCodec(testSecret, time.Hour)
	storeErr := errors.New("connection refused")
	authn := NewCredentialAuthenticator(&fakeUserStore{err: storeErr}, NewBcryptHasher(bcrypt.MinCost), codec)

	_, err := authn.Authenticate(context.Background(), Credential{Email: "ana@example.com", Password: "x"})
	assert.ErrorIs(t, err, storeErr)
}

// The stored password hash must never enter the token payload.
func TestCredentialAuthenticator_HashExcludedFromToken(t *testing.T) {
	record := storedUser(t, "sup3rsecret")
	authn, _ := newTestAuthenticator(t, map[string]*UserRecord{record.Email: record})

	token, err := authn.Authenticate(context.Background(), Credential{
		Email:    "ana@example.com",
		Password: "sup3rsecret",
	})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), record.PasswordHash)
	assert.NotContains(t, string(payload), "password")
}
