package auth

import "errors"

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidToken     = errors.New("invalid admin token")
)

// Signer signs callback URLs handed out to Klarna.
type Signer interface {
	Sign(orderID int64, gateway string) string
	Verify(orderID int64, gateway, signature string) error
}

// TokenHasher hashes and checks admin bearer tokens.
type TokenHasher interface {
	Hash(token string) (string, error)
	Compare(hash string, token string) error
}
