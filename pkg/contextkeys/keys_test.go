package contextkeys

import (
	"context"
	"testing"

	"github.com/rutamundo/backend/pkg/auth"
	"github.com/stretchr/testify/assert"
)

func TestIdentityRoundTrip(t *testing.T) {
	identity := auth.Identity{
		ID:          "u1",
		Email:       "ana@example.com",
		Name:        "ana",
		Permissions: []auth.PermissionKey{auth.PermissionViewUser},
	}

	ctx := WithIdentity(context.Background(), identity)
	got, ok := IdentityFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, identity, got)
}

func TestIdentityFrom_Missing(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFrom(ctx))
	assert.Equal(t, "", RequestIDFrom(context.Background()))
}
