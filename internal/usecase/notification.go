package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	domainErrors "github.com/polkiloo/klarnapay/internal/domain/errors"
	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/domain/repository"
	"github.com/polkiloo/klarnapay/internal/hook"
	"github.com/polkiloo/klarnapay/internal/pkg/money"
)

// PushResult is the non-error outcome of a push notification.
type PushResult string

const (
	PushAcknowledged  PushResult = "Ok"
	PushOrderMismatch PushResult = "Order ID mismatch"
	PushAlreadyPaid   PushResult = "Order already paid"
)

// NotificationReconciler finalizes orders from Klarna push notifications.
type NotificationReconciler struct {
	manager  *PaymentManager
	payments repository.PaymentRepository
	hooks    *hook.Dispatcher
	logger   *slog.Logger
}

// NewNotificationReconciler constructs NotificationReconciler.
func NewNotificationReconciler(manager *PaymentManager, payments repository.PaymentRepository, hooks *hook.Dispatcher, logger *slog.Logger) *NotificationReconciler {
	return &NotificationReconciler{manager: manager, payments: payments, hooks: hooks, logger: logger}
}

// HandlePush validates notification for order, ensures a local payment and acknowledges the remote order.
func (r *NotificationReconciler) HandlePush(ctx context.Context, order *model.Order, gw *model.Gateway, remoteOrderID string) (PushResult, error) {
	stored, _ := order.GetData(model.DataRemoteOrderID)
	if stored == "" || stored != remoteOrderID {
		r.logger.Warn("klarna push for unexpected order",
			slog.Int64("order_id", order.ID),
			slog.String("stored", stored),
			slog.String("received", remoteOrderID),
		)
		return PushOrderMismatch, nil
	}
	if order.IsPaid() {
		return PushAlreadyPaid, nil
	}

	remote, err := r.manager.GetOrder(ctx, order)
	if err != nil {
		return "", err
	}
	if !pushableStatuses[remote.Status] {
		return "", fmt.Errorf("klarna order %s in status %s: %w", remote.OrderID, remote.Status, domainErrors.ErrAccessDenied)
	}

	remote = hook.Dispatch(ctx, r.hooks, hook.PushEndpointCalled, order, remote)
	if remote == nil {
		return "", invalidArgument("order is not set")
	}

	if err := r.ensurePayment(ctx, order, gw, remote); err != nil {
		return "", err
	}

	if err := r.manager.AcknowledgeOrder(ctx, order, remote); err != nil {
		return "", fmt.Errorf("acknowledge klarna order %s: %w: %w", remote.OrderID, domainErrors.ErrAccessDenied, err)
	}
	return PushAcknowledged, nil
}

func (r *NotificationReconciler) ensurePayment(ctx context.Context, order *model.Order, gw *model.Gateway, remote *klarna.Order) error {
	currency := remote.PurchaseCurrency
	if currency == "" {
		currency = order.Total.Currency
	}
	state := model.PaymentStateAuthorization
	if remote.Status == klarna.OrderStatusCaptured {
		state = model.PaymentStateCompleted
	}

	payment, created, err := r.payments.CreateIfMissing(ctx, &model.Payment{
		OrderID:  order.ID,
		Gateway:  gw.ID,
		RemoteID: remote.OrderID,
		State:    state,
		Amount:   money.ToPrice(remote.OrderAmount, currency),
	})
	if err != nil {
		return fmt.Errorf("ensure payment for order %d: %w", order.ID, err)
	}
	if created {
		r.logger.Info("payment created from klarna push",
			slog.Int64("order_id", order.ID),
			slog.Int64("payment_id", payment.ID),
			slog.String("remote_id", remote.OrderID),
		)
	}
	return nil
}
