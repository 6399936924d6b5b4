package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Session   SessionConfig
	Catalog   CatalogConfig
	Docstore  DocstoreConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port      string `envconfig:"PORT" default:"8000"`
	Host      string `envconfig:"HOST" default:"0.0.0.0"`
	StaticDir string `envconfig:"STATIC_DIR" default:"./web/dist"`
	Gzip      bool   `envconfig:"GZIP_ENABLED" default:"true"`
}

// SessionConfig holds session lifecycle settings.
type SessionConfig struct {
	TTL           time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
}

// CatalogConfig points at an optional command catalog file.
type CatalogConfig struct {
	CommandsPath string `envconfig:"COMMAND_CATALOG"`
}

// DocstoreConfig holds remote document store settings. An empty URL
// disables the integration.
type DocstoreConfig struct {
	URL        string  `envconfig:"DOCSTORE_URL"`
	Token      string  `envconfig:"DOCSTORE_TOKEN"`
	RPS        float64 `envconfig:"DOCSTORE_RPS" default:"5"`
	MaxRetries int     `envconfig:"DOCSTORE_MAX_RETRIES" default:"3"`
	QueueSize  int     `envconfig:"DOCSTORE_QUEUE" default:"256"`
}

// Enabled reports whether the document store is configured.
func (d DocstoreConfig) Enabled() bool {
	return d.URL != ""
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig holds allowed browser origins.
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive, got %s", c.Session.SweepInterval)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive when rate limiting is enabled")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "8000",
			Host:      "0.0.0.0",
			StaticDir: "./web/dist",
			Gzip:      true,
		},
		Session: SessionConfig{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Docstore: DocstoreConfig{
			RPS:        5,
			MaxRetries: 3,
			QueueSize:  256,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
	}
}
