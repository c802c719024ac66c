package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// WebhookVerifier decides whether an inbound webhook payload may be trusted.
// The provider signs the exact raw request body with HMAC-SHA256 using the
// shared secret and sends the hex-encoded result in a header.
type WebhookVerifier struct {
	secret string
}

var ErrInvalidSignature = errors.New("invalid signature")

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// Sign returns the signature for payload. Used by the webhook simulator and
// by tests to produce requests that pass Verify.
func (v *WebhookVerifier) Sign(payload []byte) string {
	return hex.EncodeToString(v.signHMAC(payload))
}

// Verify checks the supplied signature against the one computed over payload.
// A missing secret rejects everything: verification is never bypassed,
// whatever the environment.
func (v *WebhookVerifier) Verify(payload []byte, signature string) error {
	if v.secret == "" || signature == "" {
		return ErrInvalidSignature
	}

	sign, err := hex.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}

	if !hmac.Equal(v.signHMAC(payload), sign) {
		return ErrInvalidSignature
	}

	return nil
}

func (v *WebhookVerifier) signHMAC(payload []byte) []byte {
	h := hmac.New(sha256.New, []byte(v.secret))
	h.Write(payload)

	return h.Sum(nil)
}
