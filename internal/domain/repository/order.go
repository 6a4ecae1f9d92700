package repository

import (
	"context"

	"github.com/polkiloo/klarnapay/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Get returns order with its metadata bag or ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Order, error)
	// Upsert stores order snapshot, keeping the existing metadata bag and paid amount.
	Upsert(ctx context.Context, order *model.Order) (bool, error)
	// SaveData merges order metadata into the stored bag.
	SaveData(ctx context.Context, order *model.Order) error
}
