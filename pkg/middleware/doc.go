// Package middleware provides the HTTP admission pipeline: request ID
// assignment, bearer token authentication, and permission checks. The
// pipeline runs before any handler and guarantees that a gated handler
// is never invoked for a request that fails authentication or
// authorization.
package middleware
