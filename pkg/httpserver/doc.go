// Package httpserver wraps net/http with env-driven configuration and
// graceful shutdown on context cancellation or SIGINT/SIGTERM.
package httpserver
