package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/klarnapay/internal/domain/errors"
	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/pkg/money"
)

type paymentRepository struct {
	storage *Storage
}

var paymentColumns = []string{
	"id", "order_id", "gateway", "remote_id", "state", "amount", "refunded_amount", "currency", "created_at", "updated_at",
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var (
		p                  model.Payment
		state, currency    string
		amount, refundedAm int64
	)
	if err := row.Scan(&p.ID, &p.OrderID, &p.Gateway, &p.RemoteID, &state, &amount, &refundedAm, &currency, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.State = model.PaymentState(state)
	p.Amount = money.ToPrice(amount, currency)
	p.RefundedAmount = money.ToPrice(refundedAm, currency)
	return &p, nil
}

func (r *paymentRepository) CreateIfMissing(ctx context.Context, payment *model.Payment) (*model.Payment, bool, error) {
	query, args, err := r.storage.builder.
		Insert("payments").
		Columns("order_id", "gateway", "remote_id", "state", "amount", "currency").
		Values(payment.OrderID, payment.Gateway, payment.RemoteID, string(payment.State), money.ToAmount(payment.Amount, false), payment.Amount.Currency).
		Suffix("ON CONFLICT (remote_id) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, false, err
	}

	created := *payment
	err = r.storage.pool.QueryRow(ctx, query, args...).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByRemoteID(ctx, payment.RemoteID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		if isForeignKeyViolation(err) {
			return nil, false, fmt.Errorf("order %d: %w", payment.OrderID, domainErrors.ErrNotFound)
		}
		return nil, false, err
	}
	created.RefundedAmount = money.ToPrice(0, payment.Amount.Currency)
	return &created, true, nil
}

func (r *paymentRepository) GetByRemoteID(ctx context.Context, remoteID string) (*model.Payment, error) {
	query, args, err := r.storage.builder.
		Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"remote_id": remoteID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanPayment(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	query, args, err := r.storage.builder.
		Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) UpdateState(ctx context.Context, remoteID string, state model.PaymentState) error {
	query, args, err := r.storage.builder.
		Update("payments").
		Set("state", string(state)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"remote_id": remoteID}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *paymentRepository) RecordCapture(ctx context.Context, remoteID string, amount model.Price) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query, args, err := r.storage.builder.
			Update("payments").
			Set("state", string(model.PaymentStateCompleted)).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"remote_id": remoteID}).
			Suffix("RETURNING order_id").
			ToSql()
		if err != nil {
			return err
		}

		var orderID int64
		if err := tx.QueryRow(ctx, query, args...).Scan(&orderID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		return r.adjustPaid(ctx, tx, orderID, money.ToAmount(amount, false))
	})
}

func (r *paymentRepository) RecordRefund(ctx context.Context, remoteID string, amount model.Price) error {
	refund := money.ToAmount(amount, false)
	if refund <= 0 {
		return domainErrors.ErrInvalidAmount
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query, args, err := r.storage.builder.
			Select("order_id", "amount", "refunded_amount").
			From("payments").
			Where(sq.Eq{"remote_id": remoteID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return err
		}

		var orderID, paid, refunded int64
		if err := tx.QueryRow(ctx, query, args...).Scan(&orderID, &paid, &refunded); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		refunded += refund
		if refunded > paid {
			return domainErrors.ErrInvalidAmount
		}
		state := model.PaymentStatePartiallyRefunded
		if refunded == paid {
			state = model.PaymentStateRefunded
		}

		update, args, err := r.storage.builder.
			Update("payments").
			Set("refunded_amount", refunded).
			Set("state", string(state)).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"remote_id": remoteID}).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, update, args...); err != nil {
			return err
		}

		return r.adjustPaid(ctx, tx, orderID, -refund)
	})
}

func (r *paymentRepository) adjustPaid(ctx context.Context, tx pgx.Tx, orderID, delta int64) error {
	query, args, err := r.storage.builder.
		Update("orders").
		Set("total_paid", sq.Expr("total_paid + ?", delta)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("adjust order %d paid amount: %w", orderID, err)
	}
	return nil
}
