package auth

import "errors"

// Failure kinds surfaced by the auth core. Handlers map these to HTTP
// status codes at the boundary; the messages are safe to return to
// clients as-is.
var (
	// ErrUserNotFound indicates no user record exists for the email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials indicates the password did not match the
	// stored hash (or the record has no stored hash at all).
	ErrInvalidCredentials = errors.New("the credentials are not correct")

	// ErrUnauthenticated indicates no token was presented.
	ErrUnauthenticated = errors.New("no authentication token presented")

	// ErrInvalidToken indicates a token that is malformed, unsigned, or
	// signed with the wrong secret.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrTokenExpired indicates a well-formed token whose embedded
	// expiry has passed. A token exactly at its expiry instant is
	// treated as expired.
	ErrTokenExpired = errors.New("authentication token expired")

	// ErrForbidden indicates a valid identity that lacks the permission
	// keys an operation requires. Never collapsed into the
	// unauthenticated kinds above.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrDuplicateEmail and ErrDuplicateName indicate registration-time
	// uniqueness violations.
	ErrDuplicateEmail = errors.New("email was used")
	ErrDuplicateName  = errors.New("user name was used")
)
