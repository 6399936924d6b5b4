// Package logging builds uber/zap loggers.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output
//
// Loggers are passed explicitly; there is no global logger. Use Component
// to tag a subsystem, and structured fields (session_id, app, command) for
// per-event context.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Server starting", zap.String("port", "8000"))
//	sessions := logging.Component(logger, "sessions")
package logging
