package test

import (
	"errors"
	"fmt"

	pkgAuth "github.com/polkiloo/klarnapay/internal/pkg/auth"
)

// HasherStub provides deterministic token hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied token.
func (h HasherStub) Hash(token string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(token)
	}
	return "hash:" + token, nil
}

// Compare validates token against stored hash.
func (h HasherStub) Compare(hash string, token string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, token)
	}
	if hash != "hash:"+token {
		return pkgAuth.ErrInvalidToken
	}
	return nil
}

// SignerStub signs as "sig-{order}-{gateway}".
type SignerStub struct{}

func (SignerStub) Sign(orderID int64, gateway string) string {
	return fmt.Sprintf("sig-%d-%s", orderID, gateway)
}

func (s SignerStub) Verify(orderID int64, gateway, signature string) error {
	if signature != s.Sign(orderID, gateway) {
		return pkgAuth.ErrInvalidSignature
	}
	return nil
}

// ErrStub is a generic failure for tests.
var ErrStub = errors.New("stub failure")
