package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	"github.com/polkiloo/klarnapay/internal/app"
	"github.com/polkiloo/klarnapay/internal/config"
	"github.com/polkiloo/klarnapay/internal/hook"
	"github.com/polkiloo/klarnapay/internal/logger"
	"github.com/polkiloo/klarnapay/internal/pkg/auth"
	"github.com/polkiloo/klarnapay/internal/server/http/router"
	"github.com/polkiloo/klarnapay/internal/storage/postgres"
	"github.com/polkiloo/klarnapay/internal/usecase"
)

// Module assembles the application graph. opts are appended last so tests can replace providers.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		hook.Module,
		postgres.Module,
		klarna.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
