package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// SignatureHeader carries hex(HMAC-SHA256(body)) on outbound requests and inbound callbacks
const SignatureHeader = "X-Signature"

// Signature errors
var (
	ErrMissingSignature = errors.New("webhook: missing signature")
	ErrInvalidSignature = errors.New("webhook: signature mismatch")
)

// HMACSigner signs and verifies payloads with a shared secret
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner creates a signer for the shared secret
func NewHMACSigner(secret string) (*HMACSigner, error) {
	if err := validateSecret(secret); err != nil {
		return nil, err
	}
	return &HMACSigner{secret: []byte(secret)}, nil
}

// Sign returns the lowercase hex HMAC-SHA256 of payload
func (s *HMACSigner) Sign(payload []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks signature against payload in constant time.
// An optional "sha256=" prefix is accepted.
func (s *HMACSigner) Verify(payload []byte, signature string) error {
	signature = strings.TrimSpace(signature)
	signature = strings.TrimPrefix(signature, "sha256=")
	if signature == "" {
		return ErrMissingSignature
	}
	got, err := hex.DecodeString(strings.ToLower(signature))
	if err != nil {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}
