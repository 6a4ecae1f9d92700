package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/klarnapay/internal/domain/errors"
	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/pkg/money"
)

type orderRepository struct {
	storage *Storage
}

func (r *orderRepository) Get(ctx context.Context, id int64) (*model.Order, error) {
	query, args, err := r.storage.builder.
		Select("document", "data", "total_paid", "updated_at").
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		document, data []byte
		totalPaid      int64
		updatedAt      time.Time
	)
	err = r.storage.pool.QueryRow(ctx, query, args...).Scan(&document, &data, &totalPaid, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	var order model.Order
	if err := json.Unmarshal(document, &order); err != nil {
		return nil, fmt.Errorf("decode order %d: %w", id, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &order.Data); err != nil {
			return nil, fmt.Errorf("decode order %d data: %w", id, err)
		}
	}
	order.ID = id
	order.TotalPaid = money.ToPrice(totalPaid, order.Total.Currency)
	order.UpdatedAt = updatedAt
	return &order, nil
}

func (r *orderRepository) Upsert(ctx context.Context, order *model.Order) (bool, error) {
	document, err := json.Marshal(order)
	if err != nil {
		return false, fmt.Errorf("encode order %d: %w", order.ID, err)
	}
	data, err := json.Marshal(dataOrEmpty(order.Data))
	if err != nil {
		return false, fmt.Errorf("encode order %d data: %w", order.ID, err)
	}

	query, args, err := r.storage.builder.
		Insert("orders").
		Columns("id", "uuid", "document", "data", "total_paid").
		Values(order.ID, order.UUID, document, data, money.ToAmount(order.TotalPaid, false)).
		Suffix(`ON CONFLICT (id) DO UPDATE SET uuid = EXCLUDED.uuid, document = EXCLUDED.document, updated_at = NOW()
                RETURNING (xmax = 0)`).
		ToSql()
	if err != nil {
		return false, err
	}

	var created bool
	if err := r.storage.pool.QueryRow(ctx, query, args...).Scan(&created); err != nil {
		if isUniqueViolation(err) {
			return false, domainErrors.ErrAlreadyExists
		}
		return false, err
	}
	return created, nil
}

func (r *orderRepository) SaveData(ctx context.Context, order *model.Order) error {
	data, err := json.Marshal(dataOrEmpty(order.Data))
	if err != nil {
		return fmt.Errorf("encode order %d data: %w", order.ID, err)
	}

	query, args, err := r.storage.builder.
		Update("orders").
		Set("data", sq.Expr("data || ?::jsonb", string(data))).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": order.ID}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save order %d data: %w", order.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func dataOrEmpty(data map[string]string) map[string]string {
	if data == nil {
		return map[string]string{}
	}
	return data
}
