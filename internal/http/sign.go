package httpx

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/mlehotskylf-org/signkit/internal/security"
)

// SignRequest carries the value to sign. Exactly one field must be set.
type SignRequest struct {
	Value       *string `json:"value,omitempty"`
	ValueBase64 *string `json:"value_base64,omitempty"`
}

// SignResponse is returned by the sign endpoint.
type SignResponse struct {
	Signature string `json:"signature"`
	Signed    string `json:"signed"`
}

// VerifyRequest carries a signed string to check.
type VerifyRequest struct {
	Signed string `json:"signed"`
}

// VerifyResponse reports whether the signed string is authentic.
// Value is only set when the payload is valid UTF-8.
type VerifyResponse struct {
	Valid       bool   `json:"valid"`
	Value       string `json:"value,omitempty"`
	ValueBase64 string `json:"value_base64,omitempty"`
}

// value returns the raw bytes described by the request
func (req SignRequest) value() ([]byte, string) {
	switch {
	case req.Value != nil && req.ValueBase64 != nil:
		return nil, "both value and value_base64 set"
	case req.Value != nil:
		return []byte(*req.Value), ""
	case req.ValueBase64 != nil:
		b, err := base64.StdEncoding.DecodeString(*req.ValueBase64)
		if err != nil {
			return nil, "value_base64 is not valid base64"
		}
		return b, ""
	default:
		return nil, "value or value_base64 is required"
	}
}

func signHandler(signer *security.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignRequest
		if err := decodeJSON(r, &req); err != nil {
			metrics.SignBadRequest.Add(1)
			BadRequest(w, r, err.Error())
			return
		}

		value, problem := req.value()
		if problem != "" {
			metrics.SignBadRequest.Add(1)
			BadRequest(w, r, problem)
			return
		}

		sig, err := signer.Signature(value)
		if err != nil {
			metrics.SignFail.Add(1)
			writeSecurityError(w, r, err)
			return
		}
		signed, err := signer.SignedString(value)
		if err != nil {
			metrics.SignFail.Add(1)
			writeSecurityError(w, r, err)
			return
		}

		metrics.SignOK.Add(1)
		writeJSON(w, http.StatusOK, SignResponse{Signature: sig, Signed: signed})
	}
}

func verifyHandler(signer *security.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyRequest
		if err := decodeJSON(r, &req); err != nil {
			metrics.VerifyBadRequest.Add(1)
			BadRequest(w, r, err.Error())
			return
		}

		value, ok, err := signer.Value(req.Signed)
		if err != nil {
			metrics.VerifyFail.Add(1)
			writeSecurityError(w, r, err)
			return
		}
		if !ok {
			metrics.VerifyInvalid.Add(1)
			writeJSON(w, http.StatusOK, VerifyResponse{Valid: false})
			return
		}

		metrics.VerifyValid.Add(1)
		resp := VerifyResponse{
			Valid:       true,
			ValueBase64: base64.StdEncoding.EncodeToString(value),
		}
		if utf8.Valid(value) {
			resp.Value = string(value)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// decodeJSON decodes a single JSON object, rejecting unknown fields
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
