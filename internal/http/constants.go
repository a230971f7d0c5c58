// Package httpx exposes the signing and randomness primitives over HTTP.
package httpx

// HTTP Routes
const (
	// RouteHealth is the endpoint for health checks
	RouteHealth = "/healthz"
	// RouteMetrics serves in-memory counters (non-prod only)
	RouteMetrics = "/metrics"
	// RouteSign signs a value and returns the signed string
	RouteSign = "/v1/sign"
	// RouteVerify validates a signed string and extracts its value
	RouteVerify = "/v1/verify"
	// RouteRandomBytes returns secure random bytes
	RouteRandomBytes = "/v1/random/bytes"
	// RouteRandomInt returns a uniform integer in [min, max]
	RouteRandomInt = "/v1/random/int"
	// RouteRandomUUID returns a random v4 UUID
	RouteRandomUUID = "/v1/random/uuid"
)

// Content Types
const (
	// ContentTypeJSON is the MIME type for JSON responses with UTF-8 charset
	ContentTypeJSON = "application/json; charset=utf-8"
)

// HTTP Headers
const (
	// HeaderContentType is the Content-Type header name
	HeaderContentType = "Content-Type"
	// HeaderCacheControl is the Cache-Control header name
	HeaderCacheControl = "Cache-Control"
	// HeaderHSTS is the Strict-Transport-Security header name
	HeaderHSTS = "Strict-Transport-Security"
)

// Error codes returned to clients
const (
	ErrCodeInvalidRequest        = "invalid_request"
	ErrCodeServerError           = "server_error"
	ErrCodeMisconfigured         = "misconfigured"
	ErrCodeDegenerateRange       = "degenerate_range"
	ErrCodeRandomnessUnavailable = "randomness_unavailable"
)

// Random output encodings
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)
