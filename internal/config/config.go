// Package config loads colcheck settings from environment variables.
// Defaults cover local use; Validate fails fast on anything inconsistent.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Check    CheckConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings for "colcheck serve".
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown, including waiting for
	// in-flight checks (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds PostgreSQL settings used by -query.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Optional; only -query needs it.
	// Supports both DATABASE_URL and DB_URL env vars.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns int32 `env:"DB_MAX_CONNS" default:"4"`

	// QueryTimeout bounds a single source query (default: 5m)
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT" default:"5m"`
}

// CheckConfig holds limits for loading tables and running checks.
type CheckConfig struct {
	// MaxFileSize is the maximum accepted request body in bytes (default: 100MB)
	MaxFileSize int64 `env:"CHECK_MAX_FILE_SIZE" default:"104857600"`

	// MaxConcurrent is the number of checks allowed to run at once (default: 4)
	MaxConcurrent int `env:"CHECK_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long a request waits for a check slot (default: 10s)
	MaxWaitTime time.Duration `env:"CHECK_MAX_WAIT_TIME" default:"10s"`

	// Timeout bounds a single check including loading (default: 2m)
	Timeout time.Duration `env:"CHECK_TIMEOUT" default:"2m"`
}

// RateLimitConfig holds per-client rate limiting for the server.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the limit per client address (default: 60)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"60"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies lists proxy CIDRs whose X-Real-IP/X-Forwarded-For
	// headers are believed. Comma-separated.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// RequireAPIKey enables X-API-Key checks on /api routes (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys are the accepted keys. Comma-separated.
	APIKeys []string `env:"API_KEYS"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
