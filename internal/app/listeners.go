package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	domainErrors "github.com/polkiloo/klarnapay/internal/domain/errors"
	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/domain/repository"
	"github.com/polkiloo/klarnapay/internal/hook"
)

// registerFraudListeners moves local payments along Klarna fraud decisions.
func registerFraudListeners(hooks *hook.Dispatcher, payments repository.PaymentRepository, logger *slog.Logger) {
	transitions := map[hook.Event[*klarna.Order]]model.PaymentState{
		hook.FraudAccepted: model.PaymentStateAuthorization,
		hook.FraudRejected: model.PaymentStateAuthorizationVoided,
		hook.FraudStopped:  model.PaymentStateAuthorizationVoided,
	}
	for event, state := range transitions {
		hook.Subscribe(hooks, event, fraudListener(event.Name(), state, payments, logger))
	}
}

func fraudListener(event string, state model.PaymentState, payments repository.PaymentRepository, logger *slog.Logger) hook.Listener[*klarna.Order] {
	return func(ctx context.Context, env *hook.Envelope[*klarna.Order]) {
		if env.Data == nil {
			return
		}
		err := payments.UpdateState(ctx, env.Data.OrderID, state)
		switch {
		case err == nil:
			logger.Info("payment state changed by fraud decision",
				slog.String("event", event),
				slog.String("remote_id", env.Data.OrderID),
				slog.String("state", string(state)),
			)
		case errors.Is(err, domainErrors.ErrNotFound):
			logger.Warn("fraud decision for unknown payment",
				slog.String("event", event),
				slog.String("remote_id", env.Data.OrderID),
			)
		default:
			logger.Error("failed to apply fraud decision",
				slog.String("event", event),
				slog.String("remote_id", env.Data.OrderID),
				slog.String("error", err.Error()),
			)
		}
	}
}
