package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/bits"

	"github.com/google/uuid"
)

// Random draws cryptographically secure bytes and bounded integers.
type Random struct {
	reader io.Reader
}

// NewRandom returns a Random reading from reader.
// A nil reader selects crypto/rand.Reader.
func NewRandom(reader io.Reader) *Random {
	if reader == nil {
		reader = rand.Reader
	}
	return &Random{reader: reader}
}

var defaultRandom = NewRandom(nil)

// RandomBytes returns n bytes from crypto/rand.
func RandomBytes(n int) ([]byte, error) {
	return defaultRandom.Bytes(n)
}

// RandomInt returns a uniformly distributed integer in [min, max] from crypto/rand.
func RandomInt(min, max int64) (int64, error) {
	return defaultRandom.Int(min, max)
}

// Bytes returns n freshly drawn random bytes.
func (r *Random) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: byte count must be non-negative (got %d)", ErrInvalidLength, n)
	}
	b := make([]byte, n)
	if n == 0 {
		return b, nil
	}
	if _, err := io.ReadFull(r.reader, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomnessUnavailable, err)
	}
	return b, nil
}

// Int returns a uniformly distributed integer in the inclusive range
// [min, max] using rejection sampling. min must be strictly less than max.
func (r *Random) Int(min, max int64) (int64, error) {
	if min == max {
		return 0, fmt.Errorf("%w: min and max are both %d", ErrDegenerateRange, min)
	}
	if min > max {
		return 0, fmt.Errorf("%w: min %d is greater than max %d", ErrDegenerateRange, min, max)
	}

	// Modular subtraction gives the exact span even when max-min overflows int64.
	span := uint64(max) - uint64(min)
	bitLen := bits.Len64(span)
	byteLen := bitLen/8 + 1
	mask := uint64(1)<<bitLen - 1
	if bitLen == 64 {
		mask = ^uint64(0)
	}

	for {
		b, err := r.Bytes(byteLen)
		if err != nil {
			return 0, err
		}
		var v uint64
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		v &= mask
		if v <= span {
			return int64(uint64(min) + v), nil
		}
	}
}

// Token returns n random bytes encoded as lowercase hex.
func (r *Random) Token(n int) (string, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// UUID returns a version 4 UUID drawn from the secure source.
func (r *Random) UUID() (uuid.UUID, error) {
	id, err := uuid.NewRandomFromReader(r.reader)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrRandomnessUnavailable, err)
	}
	return id, nil
}
