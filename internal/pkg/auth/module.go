package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/klarnapay/internal/config"
)

// Module provides signing and admin token primitives via fx.
var Module = fx.Options(
	fx.Provide(newTokenHasher),
	fx.Provide(newSigner),
)

func newTokenHasher() TokenHasher {
	return NewBcryptHasher(0)
}

type signerParams struct {
	fx.In

	Config *config.Config
}

func newSigner(p signerParams) Signer {
	return NewHMACSigner(p.Config.NotificationSecret)
}
