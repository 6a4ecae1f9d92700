package handlers

import (
	"context"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	"github.com/polkiloo/klarnapay/internal/app"
	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/usecase"
)

// CheckoutFacade serves the storefront checkout steps.
type CheckoutFacade interface {
	StartSession(ctx context.Context, orderID int64) (*klarna.Session, error)
	CompleteCheckout(ctx context.Context, orderID int64, authorizationToken string) (*model.Payment, error)
}

// NotificationFacade handles Klarna callbacks.
type NotificationFacade interface {
	Notify(ctx context.Context, n app.Notification) (usecase.PushResult, error)
}

// AdminFacade covers order import and order management operations.
type AdminFacade interface {
	ImportOrder(ctx context.Context, order *model.Order) (bool, error)
	Capture(ctx context.Context, orderID int64, amount *model.Price, idempotencyKey string) (*klarna.Capture, error)
	Refund(ctx context.Context, orderID int64, amount model.Price, idempotencyKey string) error
	Void(ctx context.Context, orderID int64) error
	Release(ctx context.Context, orderID int64) error
	RemoteOrder(ctx context.Context, orderID int64) (*klarna.Order, error)
	Payments(ctx context.Context, orderID int64) ([]model.Payment, error)
}

// PaymentFacade aggregates the full set of operations used across handlers.
type PaymentFacade interface {
	CheckoutFacade
	NotificationFacade
	AdminFacade
}

// HealthChecker reports storage availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
