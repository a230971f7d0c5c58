package config

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mlehotskylf-org/signkit/internal/security"
)

// validConfig returns a configuration that passes Validate
func validConfig() Config {
	return Config{
		Env:             "dev",
		Port:            "8080",
		LogLevel:        "info",
		SigningSecret:   []byte("0123456789abcdef0123456789abcdef"),
		SecretEncoding:  SecretEncodingRaw,
		MaxRandomBytes:  1024,
		MaxBodyBytes:    65536,
		ShutdownTimeout: 15 * time.Second,
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "LOG_LEVEL", "SIGNING_SECRET", "SIGNING_SECRET_ENCODING", "ENABLE_HSTS", "MAX_RANDOM_BYTES", "OTEL_ENABLED"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.SecretEncoding != SecretEncodingRaw {
		t.Errorf("SecretEncoding = %q, want raw", cfg.SecretEncoding)
	}
	if cfg.MaxRandomBytes != 1024 {
		t.Errorf("MaxRandomBytes = %d, want 1024", cfg.MaxRandomBytes)
	}
	if cfg.MaxBodyBytes != 65536 {
		t.Errorf("MaxBodyBytes = %d, want 65536", cfg.MaxBodyBytes)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 15s", cfg.ShutdownTimeout)
	}
	if cfg.EnableHSTS {
		t.Error("EnableHSTS should default to false in dev")
	}
	if cfg.OtelEnabled {
		t.Error("OtelEnabled should default to false")
	}
	if cfg.OtelServiceName != "signkit" {
		t.Errorf("OtelServiceName = %q, want signkit", cfg.OtelServiceName)
	}
	if len(cfg.SigningSecret) != 0 {
		t.Errorf("SigningSecret should be empty, got %d bytes", len(cfg.SigningSecret))
	}
}

func TestFromEnv_Secret(t *testing.T) {
	raw := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	tests := []struct {
		name     string
		secret   string
		encoding string
		want     []byte
		wantErr  bool
	}{
		{name: "raw secret", secret: raw, encoding: "", want: []byte(raw)},
		{name: "explicit raw", secret: raw, encoding: "RAW", want: []byte(raw)},
		{name: "hex secret", secret: hex.EncodeToString([]byte(raw)), encoding: "hex", want: []byte(raw)},
		{name: "base64 secret", secret: base64.StdEncoding.EncodeToString([]byte(raw)), encoding: "base64", want: []byte(raw)},
		{name: "invalid hex", secret: "zz", encoding: "hex", wantErr: true},
		{name: "unknown encoding", secret: raw, encoding: "rot13", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SIGNING_SECRET", tt.secret)
			t.Setenv("SIGNING_SECRET_ENCODING", tt.encoding)
			if tt.encoding == "" {
				os.Unsetenv("SIGNING_SECRET_ENCODING")
			}

			cfg, err := FromEnv()
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if strings.Contains(err.Error(), tt.secret) {
					t.Errorf("error leaks the secret: %q", err.Error())
				}
				return
			}
			if !reflect.DeepEqual(cfg.SigningSecret, tt.want) {
				t.Errorf("SigningSecret = %q, want %q", cfg.SigningSecret, tt.want)
			}
			if _, ok := os.LookupEnv("SIGNING_SECRET"); ok {
				t.Error("SIGNING_SECRET should be removed from the environment after parsing")
			}
		})
	}
}

func TestFromEnv_HSTSFollowsEnv(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("ENABLE_HSTS", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if !cfg.EnableHSTS {
		t.Error("EnableHSTS should default to true in prod")
	}

	t.Setenv("ENABLE_HSTS", "false")
	cfg, err = FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if cfg.EnableHSTS {
		t.Error("ENABLE_HSTS=false should override the prod default")
	}
}

func TestFromEnv_InvalidNumber(t *testing.T) {
	t.Setenv("MAX_RANDOM_BYTES", "lots")
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected error for non-numeric MAX_RANDOM_BYTES")
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		def      bool
		want     bool
	}{
		{name: "parses true", envValue: "true", def: false, want: true},
		{name: "parses 0", envValue: "0", def: true, want: false},
		{name: "uses default when unset", envValue: "", def: true, want: true},
		{name: "uses default on garbage", envValue: "maybe", def: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.envValue)
			if got := parseBool("TEST_BOOL", tt.def); got != tt.want {
				t.Errorf("parseBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeKey(t *testing.T) {
	testBytes := []byte("test key data")

	tests := []struct {
		name     string
		key      string
		encoding string
		want     []byte
		wantErr  bool
	}{
		{name: "raw passthrough", key: "test key data", encoding: SecretEncodingRaw, want: testBytes},
		{name: "raw is the default", key: "48656c6c6f", encoding: "", want: []byte("48656c6c6f")},
		{name: "decodes hex", key: hex.EncodeToString(testBytes), encoding: SecretEncodingHex, want: testBytes},
		{name: "decodes base64", key: base64.StdEncoding.EncodeToString(testBytes), encoding: SecretEncodingBase64, want: testBytes},
		{name: "decodes base64 URL encoding", key: base64.RawURLEncoding.EncodeToString(testBytes), encoding: SecretEncodingBase64, want: testBytes},
		{name: "returns error for empty key", key: "", encoding: SecretEncodingRaw, wantErr: true},
		{name: "returns error for invalid hex", key: "not-hex", encoding: SecretEncodingHex, wantErr: true},
		{name: "returns error for invalid base64", key: "!@#$", encoding: SecretEncodingBase64, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeKey(tt.key, tt.encoding)
			if (err != nil) != tt.wantErr {
				t.Errorf("decodeKey() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
}

func TestValidateErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectedErr string
	}{
		{
			name:        "invalid PORT number",
			mutate:      func(c *Config) { c.Port = "99999" },
			expectedErr: `PORT must be 1-65535 (got "99999")`,
		},
		{
			name:        "invalid PORT non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			expectedErr: `PORT must be a valid number 1-65535 (got "abc")`,
		},
		{
			name:        "missing secret",
			mutate:      func(c *Config) { c.SigningSecret = nil },
			expectedErr: "SIGNING_SECRET is required (generate one with `signctl secret`)",
		},
		{
			name:        "secret too short",
			mutate:      func(c *Config) { c.SigningSecret = []byte("fourteen-bytes") },
			expectedErr: "SIGNING_SECRET must be at least 15 bytes (got 14 bytes)",
		},
		{
			name:        "unknown secret encoding",
			mutate:      func(c *Config) { c.SecretEncoding = "rot13" },
			expectedErr: `SIGNING_SECRET_ENCODING must be 'raw', 'hex', or 'base64' (got "rot13")`,
		},
		{
			name:        "non-positive random cap",
			mutate:      func(c *Config) { c.MaxRandomBytes = 0 },
			expectedErr: "MAX_RANDOM_BYTES must be positive (got 0)",
		},
		{
			name:        "invalid ENV value",
			mutate:      func(c *Config) { c.Env = "invalid" },
			expectedErr: `ENV must be 'dev', 'staging', or 'prod' (got "invalid")`,
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "trace" },
			expectedErr: `LOG_LEVEL must be 'debug', 'info', 'warn', or 'error' (got "trace")`,
		},
		{
			name: "otel sampling rate out of range",
			mutate: func(c *Config) {
				c.OtelEnabled = true
				c.OtelEndpoint = "collector:4317"
				c.OtelSamplingRate = 1.5
			},
			expectedErr: "OTEL_SAMPLING_RATE must be between 0 and 1 (got 1.5)",
		},
		{
			name: "prod requires a longer raw secret",
			mutate: func(c *Config) {
				c.Env = "prod"
				c.SigningSecret = []byte("sixteen-byte-key")
			},
			expectedErr: "in prod, a raw SIGNING_SECRET must be at least 32 bytes (got 16 bytes)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error but got none")
			}
			if err.Error() != tt.expectedErr {
				t.Errorf("expected error %q, got %q", tt.expectedErr, err.Error())
			}
		})
	}
}

func TestConfig_NewSigner(t *testing.T) {
	cfg := validConfig()
	signer, err := cfg.NewSigner()
	if err != nil {
		t.Fatalf("NewSigner() error = %v", err)
	}
	if _, err := signer.SignedString([]byte("hello")); err != nil {
		t.Errorf("SignedString() error = %v", err)
	}

	cfg.SigningSecret = []byte("short")
	if _, err := cfg.NewSigner(); !errors.Is(err, security.ErrSecretTooShort) {
		t.Errorf("NewSigner() error = %v, want ErrSecretTooShort", err)
	}
}

func TestRedacted(t *testing.T) {
	cfg := validConfig()
	r := cfg.Redacted()

	if got := r["signing_secret"]; got != "*** (32 bytes)" {
		t.Errorf("signing_secret = %v, want redacted marker", got)
	}
	for k, v := range r {
		if s, ok := v.(string); ok && strings.Contains(s, string(cfg.SigningSecret)) {
			t.Errorf("field %s leaks the secret", k)
		}
	}
	if _, ok := r["otel_endpoint"]; ok {
		t.Error("otel_endpoint should be omitted when tracing is disabled")
	}

	attrs := cfg.LogAttrs()
	if len(attrs)%2 != 0 {
		t.Fatalf("LogAttrs() returned odd number of elements: %d", len(attrs))
	}
	for _, a := range attrs {
		if s, ok := a.(string); ok && strings.Contains(s, string(cfg.SigningSecret)) {
			t.Error("LogAttrs() leaks the secret")
		}
	}
}

func TestDecodeSecret(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		encoding string
		want     string
		wantErr  bool
	}{
		{name: "raw", value: "hello", encoding: "raw", want: "hello"},
		{name: "upper case encoding", value: "68656c6c6f", encoding: "HEX", want: "hello"},
		{name: "padded encoding", value: "aGVsbG8=", encoding: " base64 ", want: "hello"},
		{name: "empty encoding means raw", value: "hello", encoding: "", want: "hello"},
		{name: "unknown encoding", value: "hello", encoding: "rot13", wantErr: true},
		{name: "empty value", value: "", encoding: "raw", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSecret(tt.value, tt.encoding)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
