// Package http exposes the desktop over REST.
//
// Every mutating route returns the full session snapshot so clients can
// render without a follow-up read. Errors are JSON {"error": "..."} with a
// status derived from the sentinel error in the chain.
//
// Routes:
//   - GET  /health, /catalog/apps, /catalog/commands, /metrics/summary
//   - POST /sessions, GET /sessions, GET|DELETE /sessions/:id
//   - POST /sessions/:id/windows/:app/:op
//   - POST /sessions/:id/drag/:phase
//   - POST /sessions/:id/terminal, /sessions/:id/sync
//   - POST /logs
package http
