package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	"github.com/polkiloo/klarnapay/internal/config"
)

// Module provides core payment use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewRequestBuilder,
		NewPaymentManager,
		NewNotificationReconciler,
		func(cfg *config.Config) GatewayProvider { return cfg },
		func(f *klarna.Factory) ClientProvider { return f },
	),
)
