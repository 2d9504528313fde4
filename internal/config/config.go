// Package config provides configuration management for the notification router.
// Process settings come from environment variables with defaults; the list of
// destinations and their filters comes from a YAML webhook file.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//   - LOG_FILE: Rotated log file; empty logs to stdout
//   - LOG_MAX_SIZE_MB, LOG_MAX_BACKUPS, LOG_MAX_AGE_DAYS: rotation limits (100, 3, 28)
//   - AUTH_TOKEN: Bearer token expected on /webhook and /api (required)
//   - CONFIG_PATH: Webhook file (default: /etc/causelybot/config.yaml)
//   - TLS_CERT_FILE, TLS_KEY_FILE: serve HTTPS when both are set
//
// Matching:
//   - BLOOM_SIZE: Bits per field Bloom filter (default: 1000)
//   - BLOOM_HASHES: Probes per value (default: 3)
//
// Delivery:
//   - DELIVERY_TIMEOUT: Per-request delivery budget (default: 10s)
//   - BREAKER_MAX_FAILURES: Consecutive failures before a destination is skipped (default: 5, 0 disables)
//   - BREAKER_TIMEOUT: How long a tripped destination is skipped (default: 60s)
//   - REDIS_ADDRESS, REDIS_PASSWORD, REDIS_DB: Redis used by redis hooks
//
// Per webhook, URL_<NAME> and TOKEN_<NAME> override the url and token from the
// file, where NAME is the webhook name upper-cased with spaces replaced by
// underscores.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"notification-router/internal/circuitbreaker"
	apperrors "notification-router/internal/common/errors"
	"notification-router/internal/common/logging"
	"notification-router/internal/filter"
)

// Config holds process level settings
type Config struct {
	Port       string
	LogLevel   string
	AuthToken  string
	ConfigPath string

	TLSCertFile string
	TLSKeyFile  string

	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	BloomSize   int
	BloomHashes int

	DeliveryTimeout    time.Duration
	BreakerMaxFailures int
	BreakerTimeout     time.Duration

	RedisAddress  string
	RedisPassword string
	RedisDB       int
}

// Load reads the configuration from environment variables. It does not
// validate; call Validate before use.
func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		AuthToken:  getEnv("AUTH_TOKEN", ""),
		ConfigPath: getEnv("CONFIG_PATH", "/etc/causelybot/config.yaml"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getIntEnv("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getIntEnv("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getIntEnv("LOG_MAX_AGE_DAYS", 28),

		BloomSize:   getIntEnv("BLOOM_SIZE", filter.DefaultBloomSize),
		BloomHashes: getIntEnv("BLOOM_HASHES", filter.DefaultBloomHashes),

		DeliveryTimeout:    getDurationEnv("DELIVERY_TIMEOUT", 10*time.Second),
		BreakerMaxFailures: getIntEnv("BREAKER_MAX_FAILURES", 5),
		BreakerTimeout:     getDurationEnv("BREAKER_TIMEOUT", 60*time.Second),

		RedisAddress:  getEnv("REDIS_ADDRESS", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv falls back to defaultValue when the variable is unset or not an integer
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		logging.Warn("Ignoring non-integer environment variable",
			logging.String("key", key), logging.String("value", value))
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		logging.Warn("Ignoring invalid duration environment variable",
			logging.String("key", key), logging.String("value", value))
	}
	return defaultValue
}

// Validate checks required settings and value ranges
func (c *Config) Validate() error {
	if c.AuthToken == "" {
		return apperrors.ConfigError("AUTH_TOKEN environment variable is required", nil)
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return apperrors.ConfigError("PORT must be a valid port number between 1 and 65535", err).
			WithContext("port", c.Port)
	}

	if err := c.FilterOptions().Validate(); err != nil {
		return apperrors.ConfigError("BLOOM_SIZE and BLOOM_HASHES must be positive", err)
	}

	if c.DeliveryTimeout <= 0 {
		return apperrors.ConfigError("DELIVERY_TIMEOUT must be positive", nil)
	}

	if c.BreakerMaxFailures < 0 {
		return apperrors.ConfigError("BREAKER_MAX_FAILURES must not be negative", nil)
	}

	if c.BreakerMaxFailures > 0 && c.BreakerTimeout <= 0 {
		return apperrors.ConfigError("BREAKER_TIMEOUT must be positive", nil)
	}

	if c.RedisDB < 0 || c.RedisDB > 15 {
		return apperrors.ConfigError("REDIS_DB must be a number between 0 and 15", nil)
	}

	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return apperrors.ConfigError("TLS_CERT_FILE and TLS_KEY_FILE must be set together", nil)
	}

	if c.ConfigPath == "" {
		return apperrors.ConfigError("CONFIG_PATH must not be empty", nil)
	}

	return nil
}

// FilterOptions returns the Bloom sizing used when building filter indexes
func (c *Config) FilterOptions() filter.Options {
	return filter.Options{BloomSize: c.BloomSize, BloomHashes: c.BloomHashes}
}

// BreakerConfig returns the per-destination circuit breaker settings, or nil
// when breakers are disabled
func (c *Config) BreakerConfig() *circuitbreaker.Config {
	if c.BreakerMaxFailures <= 0 {
		return nil
	}
	return &circuitbreaker.Config{
		MaxFailures:           c.BreakerMaxFailures,
		Timeout:               c.BreakerTimeout,
		MaxConcurrentRequests: 1,
	}
}

// WriteTimeout returns the HTTP write timeout. Deliveries run concurrently and
// each is bounded by DeliveryTimeout, so the response must be allowed to outlast
// it; the result is never below 30s.
func (c *Config) WriteTimeout() time.Duration {
	const floor = 30 * time.Second
	const headroom = 5 * time.Second

	if t := c.DeliveryTimeout + headroom; t > floor {
		return t
	}
	return floor
}

// LogFileOptions returns the rotation settings for the global logger
func (c *Config) LogFileOptions() logging.FileOptions {
	return logging.FileOptions{
		Path:       c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
	}
}

// String renders the config without secrets
func (c *Config) String() string {
	return fmt.Sprintf("port=%s config_path=%s bloom_size=%d bloom_hashes=%d delivery_timeout=%s redis=%t",
		c.Port, c.ConfigPath, c.BloomSize, c.BloomHashes, c.DeliveryTimeout, c.RedisAddress != "")
}
