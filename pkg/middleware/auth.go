package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rutamundo/backend/pkg/auth"
	"github.com/rutamundo/backend/pkg/contextkeys"
	"github.com/rutamundo/backend/pkg/httputil"
	"github.com/rutamundo/backend/pkg/observability"
)

// Authenticator verifies bearer tokens and enforces per-route
// permission requirements before a handler runs.
type Authenticator struct {
	codec   *auth.TokenCodec
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewAuthenticator creates the admission middleware. metrics may be
// nil when metric collection is disabled.
func NewAuthenticator(codec *auth.TokenCodec, logger *observability.Logger, metrics *observability.Metrics) *Authenticator {
	return &Authenticator{
		codec:   codec,
		logger:  logger,
		metrics: metrics,
	}
}

// Require wraps a handler with authentication and a permission check.
// Every authentication failure, whatever its internal cause, is
// reported as 401; an authenticated identity lacking a required
// permission is reported as 403. The wrapped handler is only invoked
// once both checks pass.
func (a *Authenticator) Require(req auth.Requirement, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.Context().Err(); err != nil {
			// Client went away before admission. Nothing useful
			// can be written; do not run the handler.
			return
		}

		identity, err := a.verify(r)
		if err != nil {
			a.recordFailure(err)
			a.logger.ForRequest(r.Context()).
				WithField("path", r.URL.Path).
				WithError(err).
				Debug("authentication failed")
			httputil.WriteUnauthorized(w, auth.ErrUnauthenticated.Error())
			return
		}

		if !auth.HasPermissions(identity.Permissions, req) {
			a.recordFailureKind("forbidden")
			a.logger.ForRequest(r.Context()).
				WithField("path", r.URL.Path).
				WithField("user_id", identity.ID).
				Debug("permission check failed")
			httputil.WriteForbidden(w, auth.ErrForbidden.Error())
			return
		}

		ctx := contextkeys.WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional verifies a bearer token when one is present and injects the
// identity, but never rejects the request. Public routes use it so
// that logs and audit records can still name the caller.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, err := a.verify(r); err == nil {
			r = r.WithContext(contextkeys.WithIdentity(r.Context(), identity))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) verify(r *http.Request) (auth.Identity, error) {
	token, err := ExtractBearerToken(r)
	if err != nil {
		return auth.Identity{}, err
	}
	return a.codec.Verify(token)
}

// ExtractBearerToken pulls the token out of the Authorization header.
// A missing header is ErrUnauthenticated; a malformed one is
// ErrInvalidToken.
func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrUnauthenticated
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

// IdentityFromRequest returns the identity the admission pipeline
// attached to the request, or false when the request is
// unauthenticated.
func IdentityFromRequest(r *http.Request) (auth.Identity, bool) {
	return contextkeys.IdentityFrom(r.Context())
}

func (a *Authenticator) recordFailure(err error) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		a.recordFailureKind("token_expired")
	case errors.Is(err, auth.ErrInvalidToken):
		a.recordFailureKind("invalid_token")
	default:
		a.recordFailureKind("unauthenticated")
	}
}

func (a *Authenticator) recordFailureKind(kind string) {
	if a.metrics != nil {
		a.metrics.RecordAuthFailure(kind)
	}
}
