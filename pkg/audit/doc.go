// Package audit records security-relevant events (logins, account
// changes, content mutations, denied requests) to a database table.
// Audit logging is best-effort: a failed write is logged and never
// fails the request that triggered it.
package audit
