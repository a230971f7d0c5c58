package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// hmacSignSHA256 computes HMAC-SHA256 of the message using the provided key
func hmacSignSHA256(key []byte, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// hexSignature returns the lowercase hex HMAC-SHA256 of msg under key
func hexSignature(key []byte, msg []byte) string {
	return hex.EncodeToString(hmacSignSHA256(key, msg))
}

// constantTimeEqual performs constant-time comparison of two byte slices
// Returns true if slices are equal in both length and content.
// Only the length may leak through timing; signature lengths are public.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
