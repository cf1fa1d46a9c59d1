package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.True(t, hasher.Compare("correct horse battery staple", hashed))
	assert.False(t, hasher.Compare("correct horse battery stable", hashed))
	assert.False(t, hasher.Compare("", hashed))
}

func TestBcryptHasher_Salting(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("hunter22!")
	require.NoError(t, err)
	second, err := hasher.Hash("hunter22!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same plaintext must differ")
	assert.True(t, hasher.Compare("hunter22!", first))
	assert.True(t, hasher.Compare("hunter22!", second))
}

func TestBcryptHasher_MalformedHashComparesFalse(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	for _, hashed := range []string{"", "not-a-bcrypt-hash", "$2a$zz$garbage"} {
		assert.False(t, hasher.Compare("anything", hashed), "hash %q should compare false", hashed)
	}
}

func TestBcryptHasher_HashSelfDescribesCost(t *testing.T) {
	hasher := NewBcryptHasher(6)

	hashed, err := hasher.Hash("some password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$2a$06$"), "hash should embed its cost factor: %s", hashed)

	// A hasher with a different default cost still verifies it.
	other := NewBcryptHasher(bcrypt.DefaultCost)
	assert.True(t, other.Compare("some password", hashed))
}

func TestNewBcryptHasher_CostOutOfRange(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
	assert.Equal(t, 8, NewBcryptHasher(8).cost)
}
