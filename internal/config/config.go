package config

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/mlehotskylf-org/signkit/internal/security"
)

// Supported values for SIGNING_SECRET_ENCODING
const (
	SecretEncodingRaw    = "raw"
	SecretEncodingHex    = "hex"
	SecretEncodingBase64 = "base64"
)

// Config holds all application configuration
type Config struct {
	// Environment: dev, staging, or prod (default: dev)
	Env string

	// Server port (default: 8080)
	Port string

	// Log level: info, debug, warn, error (default: info)
	LogLevel string

	// Enable HSTS - default false in dev, true in prod
	EnableHSTS bool

	// Signing secret - decoded according to SecretEncoding
	SigningSecret []byte

	// How SIGNING_SECRET is encoded: raw, hex, or base64 (default: raw)
	SecretEncoding string

	// Upper bound for a single random bytes request (default: 1024)
	MaxRandomBytes int

	// Upper bound for request bodies (default: 64 KiB)
	MaxBodyBytes int64

	// How long in-flight requests get on shutdown (default: 15s)
	ShutdownTimeout time.Duration

	// OpenTelemetry tracing
	OtelEnabled      bool
	OtelEndpoint     string
	OtelServiceName  string
	OtelSamplingRate float64
}

// envSpec mirrors the environment variables read by FromEnv.
type envSpec struct {
	Env              string        `env:"ENV" envDefault:"dev"`
	Port             string        `env:"PORT" envDefault:"8080"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	SigningSecret    string        `env:"SIGNING_SECRET,unset"`
	SecretEncoding   string        `env:"SIGNING_SECRET_ENCODING" envDefault:"raw"`
	MaxRandomBytes   int           `env:"MAX_RANDOM_BYTES" envDefault:"1024"`
	MaxBodyBytes     int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	OtelEnabled      bool          `env:"OTEL_ENABLED" envDefault:"false"`
	OtelEndpoint     string        `env:"OTEL_ENDPOINT" envDefault:"localhost:4317"`
	OtelServiceName  string        `env:"OTEL_SERVICE_NAME" envDefault:"signkit"`
	OtelSamplingRate float64       `env:"OTEL_SAMPLING_RATE" envDefault:"1.0"`
}

// FromEnv reads configuration from environment variables.
// SIGNING_SECRET is removed from the process environment once read.
func FromEnv() (Config, error) {
	var spec envSpec
	if err := env.Parse(&spec); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		Env:              strings.ToLower(strings.TrimSpace(spec.Env)),
		Port:             spec.Port,
		LogLevel:         strings.ToLower(spec.LogLevel),
		SecretEncoding:   strings.ToLower(spec.SecretEncoding),
		MaxRandomBytes:   spec.MaxRandomBytes,
		MaxBodyBytes:     spec.MaxBodyBytes,
		ShutdownTimeout:  spec.ShutdownTimeout,
		OtelEnabled:      spec.OtelEnabled,
		OtelEndpoint:     spec.OtelEndpoint,
		OtelServiceName:  spec.OtelServiceName,
		OtelSamplingRate: spec.OtelSamplingRate,
	}

	// HSTS - default based on environment
	cfg.EnableHSTS = parseBool("ENABLE_HSTS", cfg.Env == "prod")

	if spec.SigningSecret != "" {
		secret, err := decodeKey(spec.SigningSecret, cfg.SecretEncoding)
		if err != nil {
			return cfg, err
		}
		cfg.SigningSecret = secret
	}

	return cfg, nil
}

// Validate checks that required fields are set and enforces prod constraints
func (c *Config) Validate() error {
	// Validate PORT format and range
	if c.Port == "" {
		return fmt.Errorf("PORT is required (set to a port number 1-65535, e.g., 8080)")
	}
	if port, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be a valid number 1-65535 (got %q)", c.Port)
	} else if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be 1-65535 (got %q)", c.Port)
	}

	if len(c.SigningSecret) == 0 {
		return fmt.Errorf("SIGNING_SECRET is required (generate one with `signctl secret`)")
	}
	if len(c.SigningSecret) < security.MinSecretLength {
		return fmt.Errorf("SIGNING_SECRET must be at least %d bytes (got %d bytes)", security.MinSecretLength, len(c.SigningSecret))
	}

	switch c.SecretEncoding {
	case SecretEncodingRaw, SecretEncodingHex, SecretEncodingBase64:
		// valid
	default:
		return fmt.Errorf("SIGNING_SECRET_ENCODING must be 'raw', 'hex', or 'base64' (got %q)", c.SecretEncoding)
	}

	if c.MaxRandomBytes < 1 {
		return fmt.Errorf("MAX_RANDOM_BYTES must be positive (got %d)", c.MaxRandomBytes)
	}
	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive (got %d)", c.MaxBodyBytes)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be non-negative (got %v)", c.ShutdownTimeout)
	}

	// Validate environment value
	switch c.Env {
	case "dev", "staging", "prod":
		// valid
	default:
		return fmt.Errorf("ENV must be 'dev', 'staging', or 'prod' (got %q)", c.Env)
	}

	// Validate log level
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("LOG_LEVEL must be 'debug', 'info', 'warn', or 'error' (got %q)", c.LogLevel)
	}

	if c.OtelEnabled {
		if c.OtelEndpoint == "" {
			return fmt.Errorf("OTEL_ENDPOINT is required when OTEL_ENABLED is true")
		}
		if c.OtelSamplingRate < 0 || c.OtelSamplingRate > 1 {
			return fmt.Errorf("OTEL_SAMPLING_RATE must be between 0 and 1 (got %v)", c.OtelSamplingRate)
		}
	}

	// Production-only constraints
	if c.Env == "prod" && c.SecretEncoding == SecretEncodingRaw && len(c.SigningSecret) < 32 {
		return fmt.Errorf("in prod, a raw SIGNING_SECRET must be at least 32 bytes (got %d bytes)", len(c.SigningSecret))
	}

	return nil
}

// NewSigner builds the signer for the configured secret
func (c Config) NewSigner() (*security.Signer, error) {
	return security.NewSigner(c.SigningSecret)
}

// Helper functions

// parseBool parses a boolean environment variable with a default
func parseBool(key string, def bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

// decodeKey decodes a secret according to its declared encoding
func decodeKey(key, encoding string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("SIGNING_SECRET is empty")
	}

	switch encoding {
	case SecretEncodingRaw, "":
		return []byte(key), nil
	case SecretEncodingHex:
		decoded, err := hex.DecodeString(key)
		if err != nil {
			return nil, fmt.Errorf("SIGNING_SECRET must be valid hex when SIGNING_SECRET_ENCODING=hex")
		}
		return decoded, nil
	case SecretEncodingBase64:
		// Try standard base64 first, then base64 URL encoding (no padding)
		if decoded, err := base64.StdEncoding.DecodeString(key); err == nil {
			return decoded, nil
		}
		if decoded, err := base64.RawURLEncoding.DecodeString(key); err == nil {
			return decoded, nil
		}
		return nil, fmt.Errorf("SIGNING_SECRET must be valid base64 when SIGNING_SECRET_ENCODING=base64")
	default:
		return nil, fmt.Errorf("SIGNING_SECRET_ENCODING must be 'raw', 'hex', or 'base64' (got %q)", encoding)
	}
}

// DecodeSecret decodes a secret supplied outside the environment, such as a
// command line flag, using the SIGNING_SECRET_ENCODING rules.
func DecodeSecret(value, encoding string) ([]byte, error) {
	return decodeKey(value, strings.ToLower(strings.TrimSpace(encoding)))
}
