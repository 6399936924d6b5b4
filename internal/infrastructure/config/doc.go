// Package config provides 12-factor configuration for the backend.
//
// Configuration is loaded from environment variables with defaults.
//
// Configuration Sections:
//   - Server: listen address, static front-end directory, gzip
//   - Session: idle TTL and sweep interval
//   - Catalog: optional command catalog file (YAML, TOML or JSON)
//   - Docstore: remote document store URL, token and client limits
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting
//   - CORS: allowed origins
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, STATIC_DIR, GZIP_ENABLED
//   - SESSION_TTL, SESSION_SWEEP_INTERVAL, COMMAND_CATALOG
//   - DOCSTORE_URL, DOCSTORE_TOKEN, DOCSTORE_RPS, DOCSTORE_MAX_RETRIES, DOCSTORE_QUEUE
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ORIGINS
package config
