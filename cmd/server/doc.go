// Package main is the entry point for the RootAccess desktop backend.
//
// The server hosts in-memory desktop sessions (window manager plus terminal
// command engine), serves the built front end, and optionally mirrors
// command intents and public projections to a remote document store.
//
// The server provides:
//   - REST API for sessions, windows, drags and terminal input
//   - WebSocket stream per session
//   - Prometheus metrics at /metrics
//   - Rate limiting, CORS and gzip
//
// Configuration:
//   - Environment variables (12-factor, see internal/infrastructure/config)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -static ./web/dist
//
//	# Development mode (colored logs, debug level)
//	./server -dev -catalog ./commands.yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
