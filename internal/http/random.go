package httpx

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mlehotskylf-org/signkit/internal/security"
)

// RandomBytesResponse is returned by the random bytes endpoint.
type RandomBytesResponse struct {
	Bytes    string `json:"bytes"`
	Encoding string `json:"encoding"`
	Length   int    `json:"length"`
}

// RandomIntResponse is returned by the random int endpoint.
type RandomIntResponse struct {
	Value int64 `json:"value"`
}

// RandomUUIDResponse is returned by the random uuid endpoint.
type RandomUUIDResponse struct {
	UUID string `json:"uuid"`
}

func randomBytesHandler(random *security.Random, maxBytes int) http.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = 1024
	}
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		n := 32
		if raw := q.Get("n"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 || parsed > maxBytes {
				metrics.RandomBadRequest.Add(1)
				BadRequest(w, r, fmt.Sprintf("n must be an integer in [0, %d] (got %q)", maxBytes, raw))
				return
			}
			n = parsed
		}

		encoding := q.Get("encoding")
		if encoding == "" {
			encoding = EncodingHex
		}
		if encoding != EncodingHex && encoding != EncodingBase64 {
			metrics.RandomBadRequest.Add(1)
			BadRequest(w, r, fmt.Sprintf("unsupported encoding %q", encoding))
			return
		}

		b, err := random.Bytes(n)
		if err != nil {
			metrics.RandomFail.Add(1)
			writeSecurityError(w, r, err)
			return
		}

		out := hex.EncodeToString(b)
		if encoding == EncodingBase64 {
			out = base64.StdEncoding.EncodeToString(b)
		}

		metrics.RandomBytes.Add(1)
		writeJSON(w, http.StatusOK, RandomBytesResponse{Bytes: out, Encoding: encoding, Length: n})
	}
}

func randomIntHandler(random *security.Random) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		lo, err := strconv.ParseInt(q.Get("min"), 10, 64)
		if err != nil {
			metrics.RandomBadRequest.Add(1)
			BadRequest(w, r, fmt.Sprintf("min must be an integer (got %q)", q.Get("min")))
			return
		}
		hi, err := strconv.ParseInt(q.Get("max"), 10, 64)
		if err != nil {
			metrics.RandomBadRequest.Add(1)
			BadRequest(w, r, fmt.Sprintf("max must be an integer (got %q)", q.Get("max")))
			return
		}

		v, err := random.Int(lo, hi)
		if err != nil {
			if isRandomFailure(err) {
				metrics.RandomFail.Add(1)
			} else {
				metrics.RandomBadRequest.Add(1)
			}
			writeSecurityError(w, r, err)
			return
		}

		metrics.RandomInts.Add(1)
		writeJSON(w, http.StatusOK, RandomIntResponse{Value: v})
	}
}

func randomUUIDHandler(random *security.Random) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := random.UUID()
		if err != nil {
			metrics.RandomFail.Add(1)
			writeSecurityError(w, r, err)
			return
		}

		metrics.RandomUUIDs.Add(1)
		writeJSON(w, http.StatusOK, RandomUUIDResponse{UUID: id.String()})
	}
}

func isRandomFailure(err error) bool {
	return errors.Is(err, security.ErrRandomnessUnavailable)
}
