package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ivanpodgorny/payrelay/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	var (
		payload  = []byte(`{"data":{"order":{"order_id":"ORD1","order_status":"PAID"}}}`)
		verifier = security.NewWebhookVerifier("test_webhook_secret")
		seenBody []byte
		next     = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		})
		handler = VerifySignature(verifier)(next)
	)

	request := httptest.NewRequest(http.MethodPost, "/webhook/payment", bytes.NewReader(payload))
	request.Header.Set(SignatureHeader, verifier.Sign(payload))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, request)

	result := w.Result()
	assert.Equal(t, http.StatusOK, result.StatusCode, "signed request passed through")
	assert.Equal(t, payload, seenBody, "body restored for the handler")
	require.NoError(t, result.Body.Close())
}

func TestVerifySignature_Rejected(t *testing.T) {
	var (
		payload  = []byte(`{"data":{}}`)
		verifier = security.NewWebhookVerifier("test_webhook_secret")
		next     = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			require.Fail(t, "handler must not be reached")
		})
		handler = VerifySignature(verifier)(next)
	)

	tests := []struct {
		name      string
		signature string
	}{
		{
			name:      "missing signature",
			signature: "",
		},
		{
			name:      "wrong signature",
			signature: verifier.Sign([]byte(`{"other":true}`)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/webhook/payment", bytes.NewReader(payload))
			if tt.signature != "" {
				request.Header.Set(SignatureHeader, tt.signature)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, request)

			result := w.Result()
			assert.Equal(t, http.StatusUnauthorized, result.StatusCode)
			b, err := io.ReadAll(result.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"success":false,"message":"Invalid signature"}`, string(b))
			require.NoError(t, result.Body.Close())
		})
	}
}
