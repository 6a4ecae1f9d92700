package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/klarnapay/internal/config"
	pkgAuth "github.com/polkiloo/klarnapay/internal/pkg/auth"
	"github.com/polkiloo/klarnapay/internal/server/http/handlers"
	"github.com/polkiloo/klarnapay/internal/server/http/middleware"
)

// Params lists router dependencies.
type Params struct {
	fx.In

	Facade Facade
	Health handlers.HealthChecker
	Hasher pkgAuth.TokenHasher
	Config *config.Config
	Logger *slog.Logger
}

// Facade is everything the handlers call.
type Facade = handlers.PaymentFacade

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	checkout := handlers.NewCheckoutHandler(p.Facade)
	notification := handlers.NewNotificationHandler(p.Facade)
	admin := handlers.NewAdminHandler(p.Facade)

	engine.GET("/ping", handlers.Health(p.Health))

	engine.POST("/checkout/:order/payment/session", checkout.Session)
	engine.POST("/checkout/:order/payment/return", checkout.Return)
	engine.POST("/payment/notify/:gateway", notification.Notify)

	orders := engine.Group("/admin/orders")
	orders.Use(middleware.AdminRequired(p.Hasher, p.Config.AdminTokenHash))
	orders.PUT("/:id", admin.Import)
	orders.GET("/:id/payments", admin.Payments)
	orders.GET("/:id/remote", admin.Remote)
	orders.POST("/:id/capture", admin.Capture)
	orders.POST("/:id/refund", admin.Refund)
	orders.POST("/:id/void", admin.Void)
	orders.POST("/:id/release", admin.Release)

	return engine
}
