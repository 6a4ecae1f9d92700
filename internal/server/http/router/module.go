package router

import (
	"go.uber.org/fx"

	"github.com/polkiloo/klarnapay/internal/app"
	"github.com/polkiloo/klarnapay/internal/server/http/handlers"
	"github.com/polkiloo/klarnapay/internal/storage/postgres"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(Setup),
	fx.Provide(func(f *app.PaymentFacade) Facade { return f }),
	fx.Provide(func(s *postgres.Storage) handlers.HealthChecker { return s }),
)
