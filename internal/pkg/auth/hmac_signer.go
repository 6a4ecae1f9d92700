package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
)

// HMACSigner signs order and gateway pairs with HMAC-SHA256.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner builds HMACSigner with provided secret.
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

// Sign returns URL-safe signature for order and gateway.
func (s *HMACSigner) Sign(orderID int64, gateway string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload(orderID, gateway)))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks signature produced by Sign.
func (s *HMACSigner) Verify(orderID int64, gateway, signature string) error {
	if signature == "" {
		return ErrInvalidSignature
	}
	expected := s.Sign(orderID, gateway)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func payload(orderID int64, gateway string) string {
	return strconv.FormatInt(orderID, 10) + ":" + gateway
}
