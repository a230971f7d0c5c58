// Package security provides keyed message authentication, a self-contained
// signed string encoding, and cryptographically secure randomness.
//
// # Signed Strings
//
// A signed string couples an HMAC-SHA256 signature to the value it covers so
// the pair can be handed to an untrusted party and verified on return.
// It provides tamper detection but NOT confidentiality: the value is only
// base64-encoded and is readable by anyone holding the string.
//
// # Format
//
// Structure: hex(HMAC-SHA256(value, secret)) + "-" + base64(value)
// Example: 20e00db2b7a2a9fbecb5abc32a1b80aa414f4938524c91a0001fa35a59eec857-aGVsbG8=
//
// The hex signature is lowercase and always 64 characters. The payload uses
// the standard base64 alphabet with padding, which never contains "-", so
// the first "-" is always the separator.
//
// # Secrets
//
// The secret is injected at construction and must be at least
// MinSecretLength bytes. It is never logged and never appears in errors.
//
// # Randomness
//
// Random draws from crypto/rand by default. There is no fallback to a
// non-cryptographic generator: a failing source surfaces as
// ErrRandomnessUnavailable.
package security

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	// MinSecretLength is the minimum accepted signing secret length in bytes.
	MinSecretLength = 15

	// SignatureHexLength is the length of an encoded signature.
	SignatureHexLength = 64

	signedStringSeparator = "-"
)

// Signer signs values and verifies signed strings with a shared secret.
// A Signer is immutable and safe for concurrent use.
type Signer struct {
	secret []byte
}

// NewSigner returns a Signer keyed by secret. The secret is copied.
// It fails with a *ConfigurationError wrapping ErrSecretTooShort when the
// secret is shorter than MinSecretLength.
func NewSigner(secret []byte) (*Signer, error) {
	if err := checkSecret(secret); err != nil {
		return nil, err
	}
	s := &Signer{secret: make([]byte, len(secret))}
	copy(s.secret, secret)
	return s, nil
}

func checkSecret(secret []byte) error {
	if len(secret) < MinSecretLength {
		return &ConfigurationError{
			Reason: fmt.Sprintf("secret must be at least %d bytes (got %d)", MinSecretLength, len(secret)),
			Err:    ErrSecretTooShort,
		}
	}
	return nil
}

// Signature returns the lowercase hex HMAC-SHA256 of value.
func (s *Signer) Signature(value []byte) (string, error) {
	if s == nil {
		return "", checkSecret(nil)
	}
	if err := checkSecret(s.secret); err != nil {
		return "", err
	}
	return hexSignature(s.secret, value), nil
}

// SignedString encodes value as signature + "-" + base64(value).
func (s *Signer) SignedString(value []byte) (string, error) {
	sig, err := s.Signature(value)
	if err != nil {
		return "", err
	}
	return sig + signedStringSeparator + base64.StdEncoding.EncodeToString(value), nil
}

// Validate reports whether input is a signed string produced with this
// signer's secret. Malformed or forged input yields false with a nil error;
// only a misconfigured signer returns an error.
func (s *Signer) Validate(input string) (bool, error) {
	_, ok, err := s.verify(input)
	return ok, err
}

// Value returns the value carried by a valid signed string. ok is false
// when the input is malformed or its signature does not match.
func (s *Signer) Value(input string) (value []byte, ok bool, err error) {
	return s.verify(input)
}

// verify is the single decode-and-check path behind Validate and Value, so
// the bytes returned are always the bytes that were authenticated.
func (s *Signer) verify(input string) ([]byte, bool, error) {
	sig, encoded, found := strings.Cut(input, signedStringSeparator)
	if !found {
		return nil, false, nil
	}

	decoded, decodeErr := decodePayload(encoded)
	if decodeErr != nil {
		// Checked as the empty value, then rejected below.
		decoded = nil
	}

	expected, err := s.Signature(decoded)
	if err != nil {
		return nil, false, err
	}

	match := constantTimeEqual([]byte(sig), []byte(expected))
	if !match || decodeErr != nil {
		return nil, false, nil
	}
	if decoded == nil {
		decoded = []byte{}
	}
	return decoded, true, nil
}

// decodePayload accepts only the canonical padded standard encoding, so each
// value has exactly one valid signed string.
func decodePayload(encoded string) ([]byte, error) {
	if strings.ContainsAny(encoded, "\r\n") {
		return nil, errors.New("payload contains line breaks")
	}
	return base64.StdEncoding.Strict().DecodeString(encoded)
}
