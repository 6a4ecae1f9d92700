package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	domainErrors "github.com/polkiloo/klarnapay/internal/domain/errors"
	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/domain/repository"
	"github.com/polkiloo/klarnapay/internal/pkg/auth"
	"github.com/polkiloo/klarnapay/internal/pkg/money"
	"github.com/polkiloo/klarnapay/internal/usecase"
)

// FacadeParams lists PaymentFacade collaborators.
type FacadeParams struct {
	fx.In

	Orders     repository.OrderRepository
	Payments   repository.PaymentRepository
	Manager    *usecase.PaymentManager
	Reconciler *usecase.NotificationReconciler
	Gateways   usecase.GatewayProvider
	Signer     auth.Signer
	Logger     *slog.Logger
}

// PaymentFacade is the entry point for HTTP handlers. Every operation on an
// order runs under that order's lock.
type PaymentFacade struct {
	orders     repository.OrderRepository
	payments   repository.PaymentRepository
	manager    *usecase.PaymentManager
	reconciler *usecase.NotificationReconciler
	gateways   usecase.GatewayProvider
	signer     auth.Signer
	logger     *slog.Logger
	locks      *orderLocks
}

// NewPaymentFacade constructs PaymentFacade.
func NewPaymentFacade(p FacadeParams) *PaymentFacade {
	return &PaymentFacade{
		orders:     p.Orders,
		payments:   p.Payments,
		manager:    p.Manager,
		reconciler: p.Reconciler,
		gateways:   p.Gateways,
		signer:     p.Signer,
		logger:     p.Logger,
		locks:      newOrderLocks(),
	}
}

// ImportOrder stores an order snapshot pushed by the commerce system.
// The stored UUID is kept when the snapshot carries none.
func (f *PaymentFacade) ImportOrder(ctx context.Context, order *model.Order) (bool, error) {
	if order.ID <= 0 {
		return false, fmt.Errorf("%w: order id must be positive", domainErrors.ErrInvalidArgument)
	}
	if order.Total.Currency == "" {
		return false, fmt.Errorf("%w: order total currency is empty", domainErrors.ErrInvalidArgument)
	}
	defer f.locks.lock(order.ID)()

	if order.UUID == "" {
		existing, err := f.orders.Get(ctx, order.ID)
		switch {
		case err == nil:
			order.UUID = existing.UUID
		case !errors.Is(err, domainErrors.ErrNotFound):
			return false, err
		}
		if order.UUID == "" {
			order.UUID = uuid.NewString()
		}
	}
	return f.orders.Upsert(ctx, order)
}

// StartSession creates or refreshes the Klarna payment session of the order.
func (f *PaymentFacade) StartSession(ctx context.Context, orderID int64) (*klarna.Session, error) {
	defer f.locks.lock(orderID)()

	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return f.manager.SessionRequest(ctx, order)
}

// CompleteCheckout authorizes the order with the token from the widget and records a payment.
func (f *PaymentFacade) CompleteCheckout(ctx context.Context, orderID int64, authorizationToken string) (*model.Payment, error) {
	defer f.locks.lock(orderID)()

	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	authorized, err := f.manager.AuthorizeOrder(ctx, order, authorizationToken)
	if err != nil {
		return nil, err
	}
	if authorized.FraudStatus == klarna.FraudStatusRejected {
		f.logger.Warn("klarna authorization rejected",
			slog.Int64("order_id", order.ID),
			slog.String("remote_id", authorized.OrderID),
		)
		return nil, domainErrors.ErrFraudValidation
	}

	payment, _, err := f.payments.CreateIfMissing(ctx, &model.Payment{
		OrderID:  order.ID,
		Gateway:  order.PaymentGateway,
		RemoteID: authorized.OrderID,
		State:    model.PaymentStateAuthorization,
		Amount:   order.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("record payment for order %d: %w", order.ID, err)
	}
	return payment, nil
}

// Notification is an inbound Klarna callback for a gateway.
type Notification struct {
	GatewayID     string
	OrderID       int64
	Signature     string
	RemoteOrderID string
	EventType     string
}

// Notify handles fraud decisions and push notifications. The callback URL signature is
// checked before anything is loaded.
func (f *PaymentFacade) Notify(ctx context.Context, n Notification) (usecase.PushResult, error) {
	if err := f.signer.Verify(n.OrderID, n.GatewayID, n.Signature); err != nil {
		return "", fmt.Errorf("%w: %w", domainErrors.ErrAccessDenied, err)
	}
	defer f.locks.lock(n.OrderID)()

	order, err := f.orders.Get(ctx, n.OrderID)
	if err != nil {
		return "", err
	}
	if order.PaymentGateway != n.GatewayID {
		return "", fmt.Errorf("order %d is not paid with gateway %q: %w", order.ID, n.GatewayID, domainErrors.ErrAccessDenied)
	}
	gw, err := usecase.ResolveGateway(order, f.gateways)
	if err != nil {
		return "", err
	}

	if n.EventType != "" {
		if err := f.manager.HandleNotificationEvent(ctx, order, n.EventType); err != nil {
			return "", err
		}
		return usecase.PushAcknowledged, nil
	}
	return f.reconciler.HandlePush(ctx, order, gw, n.RemoteOrderID)
}

// Capture captures amount, or the outstanding balance when amount is nil.
func (f *PaymentFacade) Capture(ctx context.Context, orderID int64, amount *model.Price, idempotencyKey string) (*klarna.Capture, error) {
	defer f.locks.lock(orderID)()

	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if amount != nil && !amount.IsPositive() {
		return nil, fmt.Errorf("capture %s: %w", amount, domainErrors.ErrInvalidAmount)
	}
	capture, err := f.manager.CreateCapture(ctx, order, amount, idempotencyKey)
	if err != nil {
		return nil, err
	}

	payment, err := f.ensurePayment(ctx, order)
	if err != nil {
		return nil, err
	}
	captured := money.ToPrice(capture.CapturedAmount, order.Total.Currency)
	if err := f.payments.RecordCapture(ctx, payment.RemoteID, captured); err != nil {
		return nil, fmt.Errorf("record capture for order %d: %w", order.ID, err)
	}
	return capture, nil
}

// Refund refunds amount of captured funds.
func (f *PaymentFacade) Refund(ctx context.Context, orderID int64, amount model.Price, idempotencyKey string) error {
	defer f.locks.lock(orderID)()

	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if amount.Currency == "" {
		amount.Currency = order.Total.Currency
	}
	if amount.Currency != order.Total.Currency {
		return fmt.Errorf("refund currency %s, order currency %s: %w", amount.Currency, order.Total.Currency, domainErrors.ErrInvalidAmount)
	}
	if err := f.manager.RefundPayment(ctx, order, amount, idempotencyKey); err != nil {
		return err
	}

	payment, err := f.ensurePayment(ctx, order)
	if err != nil {
		return err
	}
	if err := f.payments.RecordRefund(ctx, payment.RemoteID, amount); err != nil {
		return fmt.Errorf("record refund for order %d: %w", order.ID, err)
	}
	return nil
}

// Void cancels the remote order and voids the local authorization.
func (f *PaymentFacade) Void(ctx context.Context, orderID int64) error {
	defer f.locks.lock(orderID)()

	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if err := f.manager.VoidPayment(ctx, order); err != nil {
		return err
	}

	payment, err := f.ensurePayment(ctx, order)
	if err != nil {
		return err
	}
	return f.payments.UpdateState(ctx, payment.RemoteID, model.PaymentStateAuthorizationVoided)
}

// Release releases the remaining authorized amount.
func (f *PaymentFacade) Release(ctx context.Context, orderID int64) error {
	defer f.locks.lock(orderID)()

	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	return f.manager.ReleaseRemainingAuthorization(ctx, order, nil)
}

// RemoteOrder returns the Klarna order management snapshot.
func (f *PaymentFacade) RemoteOrder(ctx context.Context, orderID int64) (*klarna.Order, error) {
	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return f.manager.GetOrder(ctx, order)
}

// Payments lists local payments of the order.
func (f *PaymentFacade) Payments(ctx context.Context, orderID int64) ([]model.Payment, error) {
	if _, err := f.orders.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return f.payments.ListByOrder(ctx, orderID)
}

// ensurePayment returns the local payment of the order's remote order, creating it
// in authorization state when neither checkout return nor push recorded one.
func (f *PaymentFacade) ensurePayment(ctx context.Context, order *model.Order) (*model.Payment, error) {
	remoteID, ok := order.GetData(model.DataRemoteOrderID)
	if !ok {
		return nil, fmt.Errorf("order %d has no klarna order id: %w", order.ID, domainErrors.ErrNonKlarnaOrder)
	}
	payment, _, err := f.payments.CreateIfMissing(ctx, &model.Payment{
		OrderID:  order.ID,
		Gateway:  order.PaymentGateway,
		RemoteID: remoteID,
		State:    model.PaymentStateAuthorization,
		Amount:   order.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("ensure payment for order %d: %w", order.ID, err)
	}
	return payment, nil
}
