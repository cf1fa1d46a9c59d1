// Package api exposes the HTTP surface of the backend: user
// registration and login, the authenticated user endpoint, and CRUD
// for trips, news items, and contact messages. Routes declare their
// permission requirements in a static table; the middleware package
// enforces them before any handler runs.
package api
