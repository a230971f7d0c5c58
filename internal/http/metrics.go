package httpx

import (
	"net/http"
	"sync/atomic"
)

// Metrics holds atomic counters for the signing and randomness endpoints.
// These are lightweight in-memory counters that provide visibility without heavy dependencies.
type Metrics struct {
	// Signing counters
	SignOK         atomic.Uint64 // Value signed
	SignBadRequest atomic.Uint64 // Request body rejected
	SignFail       atomic.Uint64 // Signer returned an error

	// Verification counters
	VerifyValid      atomic.Uint64 // Signed string accepted
	VerifyInvalid    atomic.Uint64 // Signed string malformed or forged
	VerifyBadRequest atomic.Uint64 // Request body rejected
	VerifyFail       atomic.Uint64 // Signer returned an error

	// Randomness counters
	RandomBytes      atomic.Uint64 // Byte sequences served
	RandomInts       atomic.Uint64 // Integers served
	RandomUUIDs      atomic.Uint64 // UUIDs served
	RandomBadRequest atomic.Uint64 // Invalid parameters
	RandomFail       atomic.Uint64 // Entropy source failed
}

// Global metrics instance
var metrics = &Metrics{}

// MetricsSnapshot represents a point-in-time view of all metrics.
type MetricsSnapshot struct {
	Sign   SignMetrics   `json:"sign"`
	Verify VerifyMetrics `json:"verify"`
	Random RandomMetrics `json:"random"`
}

// SignMetrics groups signing counters.
type SignMetrics struct {
	OK         uint64 `json:"ok"`
	BadRequest uint64 `json:"bad_request"`
	Fail       uint64 `json:"fail"`
}

// VerifyMetrics groups verification counters.
type VerifyMetrics struct {
	Valid      uint64 `json:"valid"`
	Invalid    uint64 `json:"invalid"`
	BadRequest uint64 `json:"bad_request"`
	Fail       uint64 `json:"fail"`
}

// RandomMetrics groups randomness counters.
type RandomMetrics struct {
	Bytes      uint64 `json:"bytes"`
	Ints       uint64 `json:"ints"`
	UUIDs      uint64 `json:"uuids"`
	BadRequest uint64 `json:"bad_request"`
	Fail       uint64 `json:"fail"`
}

// Snapshot returns a consistent view of all metrics at this moment.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Sign: SignMetrics{
			OK:         m.SignOK.Load(),
			BadRequest: m.SignBadRequest.Load(),
			Fail:       m.SignFail.Load(),
		},
		Verify: VerifyMetrics{
			Valid:      m.VerifyValid.Load(),
			Invalid:    m.VerifyInvalid.Load(),
			BadRequest: m.VerifyBadRequest.Load(),
			Fail:       m.VerifyFail.Load(),
		},
		Random: RandomMetrics{
			Bytes:      m.RandomBytes.Load(),
			Ints:       m.RandomInts.Load(),
			UUIDs:      m.RandomUUIDs.Load(),
			BadRequest: m.RandomBadRequest.Load(),
			Fail:       m.RandomFail.Load(),
		},
	}
}

// metricsHandler serves metrics in JSON format.
// Only routed outside prod.
func metricsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Snapshot())
}
