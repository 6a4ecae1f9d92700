package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher keeps admin tokens as bcrypt hashes.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher with provided cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns bcrypt hash for provided token.
func (h *BcryptHasher) Hash(token string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(token), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// Compare checks token against stored hash.
func (h *BcryptHasher) Compare(hash string, token string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidToken
	}
	return err
}
