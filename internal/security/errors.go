package security

import (
	"errors"
	"fmt"
)

var (
	// ErrSecretTooShort is returned when the signing secret is missing or
	// shorter than MinSecretLength.
	ErrSecretTooShort = errors.New("secret too short")

	// ErrRandomnessUnavailable is returned when the secure random source
	// fails to supply the requested bytes.
	ErrRandomnessUnavailable = errors.New("secure randomness unavailable")

	// ErrDegenerateRange is returned by RandomInt when the range holds a
	// single value or is inverted.
	ErrDegenerateRange = errors.New("degenerate range")

	// ErrInvalidLength is returned when a negative byte count is requested.
	ErrInvalidLength = errors.New("invalid length")
)

// ConfigurationError reports a signer that cannot operate with the
// configuration it was given. It never carries secret material.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("signer misconfigured: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
