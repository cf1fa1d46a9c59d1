// Package observability provides structured logging, Prometheus
// metrics, health probes, panic recovery, and graceful shutdown for
// the API server.
package observability
