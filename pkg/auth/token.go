package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the signed claim set. Only the fields declared here
// survive verification; extra fields injected into a payload are
// dropped during parsing and never reach the trusted Identity.
type tokenClaims struct {
	UserID      string          `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Permissions []PermissionKey `json:"permissions"`
	jwt.RegisteredClaims
}

// TokenCodec signs identities into opaque bearer tokens and verifies
// them back. The signing secret and expiry duration are fixed at
// construction and immutable for the process lifetime.
type TokenCodec struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a codec signing HS256 tokens that expire after
// the given duration.
func NewTokenCodec(secret string, expiry time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Issue serializes the identity plus issued-at and expires-at
// timestamps into a signed, URL-safe token string.
func (c *TokenCodec) Issue(identity Identity) (string, error) {
	now := c.now()
	claims := tokenClaims{
		UserID:      identity.ID,
		Email:       identity.Email,
		Name:        identity.Name,
		Permissions: identity.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify decodes and validates a token, returning the embedded
// identity. Failure kinds:
//
//   - empty token: ErrUnauthenticated
//   - bad signature or unparseable payload: ErrInvalidToken
//   - current time at or past the embedded expiry: ErrTokenExpired
//
// Expiry and signature failures are deliberately kept distinct so the
// middleware can log them apart, even though both normalize to the
// same unauthorized response at the HTTP boundary.
func (c *TokenCodec) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrInvalidToken
	}
	if !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	// The library treats a token as live until strictly after its
	// expiry; exactly-at-expiry must count as expired.
	if claims.ExpiresAt == nil || !c.now().Before(claims.ExpiresAt.Time) {
		return Identity{}, ErrTokenExpired
	}

	return Identity{
		ID:          claims.UserID,
		Email:       claims.Email,
		Name:        claims.Name,
		Permissions: claims.Permissions,
	}, nil
}
