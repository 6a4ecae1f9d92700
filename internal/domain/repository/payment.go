package repository

import (
	"context"

	"github.com/polkiloo/klarnapay/internal/domain/model"
)

// PaymentRepository manages local payments mirroring Klarna orders.
type PaymentRepository interface {
	// CreateIfMissing stores payment unless one with the same remote ID exists.
	// Returns the stored payment and whether it was created.
	CreateIfMissing(ctx context.Context, payment *model.Payment) (*model.Payment, bool, error)
	GetByRemoteID(ctx context.Context, remoteID string) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error)
	UpdateState(ctx context.Context, remoteID string, state model.PaymentState) error
	// RecordCapture completes payment and adds amount to order total paid atomically.
	RecordCapture(ctx context.Context, remoteID string, amount model.Price) error
	// RecordRefund adds amount to refunded total and subtracts it from order total paid atomically.
	RecordRefund(ctx context.Context, remoteID string, amount model.Price) error
}
