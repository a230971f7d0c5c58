package config

import (
	"fmt"
)

// Redacted returns a map suitable for logging/json with secrets replaced by "***"
func (c Config) Redacted() map[string]any {
	redacted := make(map[string]any)

	// Non-sensitive fields
	redacted["env"] = c.Env
	redacted["port"] = c.Port
	redacted["log_level"] = c.LogLevel
	redacted["enable_hsts"] = c.EnableHSTS
	redacted["signing_secret_encoding"] = c.SecretEncoding
	redacted["max_random_bytes"] = c.MaxRandomBytes
	redacted["max_body_bytes"] = c.MaxBodyBytes
	redacted["shutdown_timeout"] = c.ShutdownTimeout.String()
	redacted["otel_enabled"] = c.OtelEnabled
	if c.OtelEnabled {
		redacted["otel_endpoint"] = c.OtelEndpoint
		redacted["otel_service_name"] = c.OtelServiceName
		redacted["otel_sampling_rate"] = c.OtelSamplingRate
	}

	// Redact sensitive fields
	if len(c.SigningSecret) > 0 {
		redacted["signing_secret"] = fmt.Sprintf("*** (%d bytes)", len(c.SigningSecret))
	}

	return redacted
}

// LogAttrs flattens the redacted view into key/value pairs for slog
func (c Config) LogAttrs() []any {
	r := c.Redacted()
	keys := []string{"env", "port", "log_level", "enable_hsts", "signing_secret_encoding", "max_random_bytes", "otel_enabled", "signing_secret"}
	attrs := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		if v, ok := r[k]; ok {
			attrs = append(attrs, k, v)
		}
	}
	return attrs
}
