// Package auth implements the authentication and authorization core:
// bcrypt password hashing, stateless signed session tokens, and
// permission-set evaluation.
//
// # Overview
//
// A user logs in with email and password. The CredentialAuthenticator
// verifies the password against the stored bcrypt hash and asks the
// TokenCodec to mint a signed JWT carrying the user's identity and
// permission keys. Every subsequent request presents that token as a
// bearer credential; the middleware verifies it and checks the route's
// declared permission requirement before the handler runs.
//
// # Token Flow
//
//	codec := auth.NewTokenCodec(secret, time.Hour)
//	authn := auth.NewCredentialAuthenticator(users, hasher, codec)
//	token, err := authn.Authenticate(ctx, auth.Credential{Email: e, Password: p})
//	...
//	identity, err := codec.Verify(token)
//	if auth.HasPermissions(identity.Permissions, auth.Requirement{Required: []auth.PermissionKey{auth.PermissionViewUser}}) {
//		// admitted
//	}
//
// Tokens are self-contained: no session store exists and no database
// lookup happens on verification. The trade-off is that a token cannot
// be revoked before its embedded expiry; that is a deliberate design
// decision, not an omission.
package auth
