package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

type Verifier interface {
	Verify(payload []byte, signature string) error
}

// SignatureHeader carries the provider's hex HMAC-SHA256 of the request body.
const SignatureHeader = "x-webhook-signature"

// VerifySignature returns middleware that authenticates webhook requests.
// The raw body is read to compute the HMAC over the exact bytes the provider
// signed and restored for the next handler. Requests that fail verification
// are answered with 401 and never reach the handler.
func VerifySignature(v Verifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)

				return
			}

			r.Body = io.NopCloser(bytes.NewReader(payload))

			if err := v.Verify(payload, r.Header.Get(SignatureHeader)); err != nil {
				unauthorized(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	respJSON, _ := json.Marshal(struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{
		Message: "Invalid signature",
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write(respJSON)
}
