// Package terminal implements the terminal mini-game command engine.
//
// Execute is a pure function of (state, catalog, input, now): it never
// fails, and every user-facing problem becomes a log line. Cooldowns expire
// lazily; readiness is decided by comparing the stored ready-at time with
// now at the next attempt.
//
// Engine wraps a State for one session with a clock, a lock and optional
// metrics and intent hooks.
package terminal
