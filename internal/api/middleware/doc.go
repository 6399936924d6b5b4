// Package middleware provides the gin middleware stack for the desktop API.
//
// Middleware stack includes:
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: one zap line per request, level by status class
//   - Recovery: panic recovery with a JSON 500
//   - CORS: cross-origin resource sharing with configurable origins
//   - RateLimit: per-IP token bucket with idle eviction
//   - GlobalRateLimit: one bucket for all clients
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.Logger(logger))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(origins)))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
