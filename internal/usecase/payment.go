package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	domainErrors "github.com/polkiloo/klarnapay/internal/domain/errors"
	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/domain/repository"
	"github.com/polkiloo/klarnapay/internal/hook"
	"github.com/polkiloo/klarnapay/internal/pkg/money"
)

// GatewayProvider looks up configured gateways.
type GatewayProvider interface {
	Gateway(id string) (*model.Gateway, bool)
}

// ClientProvider returns Klarna API client for a gateway.
type ClientProvider interface {
	Client(gw *model.Gateway) (klarna.API, error)
}

// ResolveGateway returns the Klarna gateway the order is paid with.
func ResolveGateway(order *model.Order, gateways GatewayProvider) (*model.Gateway, error) {
	if order.PaymentGateway == "" {
		return nil, fmt.Errorf("order %d has no payment gateway: %w", order.ID, domainErrors.ErrNonKlarnaOrder)
	}
	gw, ok := gateways.Gateway(order.PaymentGateway)
	if !ok || gw.Plugin != model.PluginKlarnaPayments {
		return nil, fmt.Errorf("order %d gateway %q: %w", order.ID, order.PaymentGateway, domainErrors.ErrNonKlarnaOrder)
	}
	return gw, nil
}

// PaymentManager sequences Klarna calls and keeps remote IDs on the order.
type PaymentManager struct {
	gateways GatewayProvider
	clients  ClientProvider
	builder  *RequestBuilder
	orders   repository.OrderRepository
	hooks    *hook.Dispatcher
	logger   *slog.Logger
}

// NewPaymentManager constructs PaymentManager.
func NewPaymentManager(gateways GatewayProvider, clients ClientProvider, builder *RequestBuilder, orders repository.OrderRepository, hooks *hook.Dispatcher, logger *slog.Logger) *PaymentManager {
	return &PaymentManager{
		gateways: gateways,
		clients:  clients,
		builder:  builder,
		orders:   orders,
		hooks:    hooks,
		logger:   logger,
	}
}

func (m *PaymentManager) api(order *model.Order) (klarna.API, *model.Gateway, error) {
	gw, err := ResolveGateway(order, m.gateways)
	if err != nil {
		return nil, nil, err
	}
	client, err := m.clients.Client(gw)
	if err != nil {
		return nil, nil, err
	}
	return client, gw, nil
}

func (m *PaymentManager) saveData(ctx context.Context, order *model.Order, key, value string) error {
	order.SetData(key, value)
	if err := m.orders.SaveData(ctx, order); err != nil {
		return fmt.Errorf("save order %d %s: %w", order.ID, key, err)
	}
	return nil
}

// SessionRequest creates or refreshes the payment session of the order.
// A stored session is updated and re-read; any API failure there falls back to creating a new one.
func (m *PaymentManager) SessionRequest(ctx context.Context, order *model.Order) (*klarna.Session, error) {
	api, gw, err := m.api(order)
	if err != nil {
		return nil, err
	}

	req, err := m.builder.CreateSessionRequest(order, gw)
	if err != nil {
		return nil, err
	}
	req = hook.Dispatch(ctx, m.hooks, hook.SessionCreate, order, req)
	if req == nil {
		return nil, invalidArgument("session is not set")
	}

	if sessionID, ok := order.GetData(model.DataRemoteSessionID); ok {
		session, err := m.refreshSession(ctx, api, sessionID, req)
		if err == nil {
			if session.SessionID != "" && session.SessionID != sessionID {
				if err := m.saveData(ctx, order, model.DataRemoteSessionID, session.SessionID); err != nil {
					return nil, err
				}
			}
			return session, nil
		}
		if !klarna.IsAPIError(err) {
			return nil, err
		}
		level, msg := slog.LevelWarn, "klarna session refresh failed, creating new session"
		if klarna.IsNotFound(err) {
			level, msg = slog.LevelInfo, "klarna session expired, creating new session"
		}
		m.logger.LogAttrs(ctx, level, msg,
			slog.Int64("order_id", order.ID),
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	return m.createSession(ctx, api, order, req)
}

func (m *PaymentManager) refreshSession(ctx context.Context, api klarna.API, sessionID string, req *klarna.SessionRequest) (*klarna.Session, error) {
	if err := api.UpdateSession(ctx, sessionID, req); err != nil {
		return nil, err
	}
	return api.ReadSession(ctx, sessionID)
}

func (m *PaymentManager) createSession(ctx context.Context, api klarna.API, order *model.Order, req *klarna.SessionRequest) (*klarna.Session, error) {
	created, err := api.CreateSession(ctx, req)
	if err != nil {
		return nil, err
	}
	if created.SessionID == "" {
		return &klarna.Session{
			SessionRequest:          *req,
			ClientToken:             created.ClientToken,
			PaymentMethodCategories: created.PaymentMethodCategories,
		}, nil
	}

	if err := m.saveData(ctx, order, model.DataRemoteSessionID, created.SessionID); err != nil {
		return nil, err
	}
	return api.ReadSession(ctx, created.SessionID)
}

// AuthorizeOrder exchanges authorization token for a Klarna order and stores its ID.
func (m *PaymentManager) AuthorizeOrder(ctx context.Context, order *model.Order, authorizationToken string) (*klarna.AuthorizedOrder, error) {
	if authorizationToken == "" {
		return nil, invalidArgument("authorization token is empty")
	}
	api, gw, err := m.api(order)
	if err != nil {
		return nil, err
	}

	req, err := m.builder.CreateOrderRequest(order, gw)
	if err != nil {
		return nil, err
	}
	payload := hook.Dispatch[klarna.OrderPayload](ctx, m.hooks, hook.OrderCreate, order, req)
	if isNilPayload(payload) {
		return nil, invalidArgument("session is not set")
	}

	resp, err := api.AuthorizeOrder(ctx, authorizationToken, payload)
	if err != nil {
		return nil, err
	}
	if err := m.saveData(ctx, order, model.DataRemoteOrderID, resp.OrderID); err != nil {
		return nil, err
	}
	return resp, nil
}

func isNilPayload(p klarna.OrderPayload) bool {
	switch v := p.(type) {
	case *klarna.SessionRequest:
		return v == nil
	case *klarna.OrderRequest:
		return v == nil
	default:
		return p == nil
	}
}

// GetOrder fetches remote order state.
func (m *PaymentManager) GetOrder(ctx context.Context, order *model.Order) (*klarna.Order, error) {
	remoteID, ok := order.GetData(model.DataRemoteOrderID)
	if !ok {
		return nil, fmt.Errorf("order %d has no klarna order id: %w", order.ID, domainErrors.ErrNonKlarnaOrder)
	}
	api, _, err := m.api(order)
	if err != nil {
		return nil, err
	}
	return api.GetOrder(ctx, remoteID)
}

// CreateCapture captures the outstanding balance, or amount when given, and
// returns the capture that appeared on the remote order.
func (m *PaymentManager) CreateCapture(ctx context.Context, order *model.Order, amount *model.Price, idempotencyKey string) (*klarna.Capture, error) {
	before, err := m.GetOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	api, _, err := m.api(order)
	if err != nil {
		return nil, err
	}

	req, err := m.builder.CreateCaptureRequest(order)
	if err != nil {
		return nil, err
	}
	req = hook.Dispatch(ctx, m.hooks, hook.CaptureCreate, order, req)
	if req == nil {
		return nil, invalidArgument("capture is not set")
	}
	if amount != nil {
		req.CapturedAmount = money.ToAmount(*amount, false)
	}
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	if err := api.CreateCapture(ctx, before.OrderID, req, idempotencyKey); err != nil {
		return nil, err
	}

	after, err := api.GetOrder(ctx, before.OrderID)
	if err != nil {
		return nil, err
	}
	return newCapture(before, after)
}

// newCapture returns the first capture of after unknown to before, in response order.
func newCapture(before, after *klarna.Order) (*klarna.Capture, error) {
	known := make(map[string]struct{}, len(before.Captures))
	for _, c := range before.Captures {
		known[c.CaptureID] = struct{}{}
	}
	for i := range after.Captures {
		if _, ok := known[after.Captures[i].CaptureID]; !ok {
			return &after.Captures[i], nil
		}
	}
	return nil, fmt.Errorf("no new capture on klarna order %s: %w", after.OrderID, domainErrors.ErrNotFound)
}

// RefundPayment refunds amount. The key must be unique per logical refund.
func (m *PaymentManager) RefundPayment(ctx context.Context, order *model.Order, amount model.Price, idempotencyKey string) error {
	if idempotencyKey == "" {
		return invalidArgument("idempotency key is empty")
	}
	if !amount.IsPositive() {
		return fmt.Errorf("refund %s: %w", amount, domainErrors.ErrInvalidAmount)
	}

	remote, err := m.GetOrder(ctx, order)
	if err != nil {
		return err
	}
	api, _, err := m.api(order)
	if err != nil {
		return err
	}

	req := hook.Dispatch(ctx, m.hooks, hook.RefundCreate, order, &klarna.RefundRequest{
		RefundedAmount: money.ToAmount(amount, false),
	})
	if req == nil {
		return invalidArgument("refund is not set")
	}
	return api.CreateRefund(ctx, remote.OrderID, req, idempotencyKey)
}

// VoidPayment cancels the remote order.
func (m *PaymentManager) VoidPayment(ctx context.Context, order *model.Order) error {
	return m.remoteCall(ctx, order, nil, hook.VoidPayment, func(api klarna.API, remote *klarna.Order) error {
		return api.CancelOrder(ctx, remote.OrderID)
	})
}

// ReleaseRemainingAuthorization releases the uncaptured amount. Remote is fetched when nil.
func (m *PaymentManager) ReleaseRemainingAuthorization(ctx context.Context, order *model.Order, remote *klarna.Order) error {
	return m.remoteCall(ctx, order, remote, hook.ReleaseRemainingAuthorization, func(api klarna.API, remote *klarna.Order) error {
		return api.ReleaseRemainingAuthorization(ctx, remote.OrderID)
	})
}

// AcknowledgeOrder acknowledges the remote order keyed by order UUID. Remote is fetched when nil.
func (m *PaymentManager) AcknowledgeOrder(ctx context.Context, order *model.Order, remote *klarna.Order) error {
	return m.remoteCall(ctx, order, remote, hook.AcknowledgeOrder, func(api klarna.API, remote *klarna.Order) error {
		return api.AcknowledgeOrder(ctx, remote.OrderID, order.UUID)
	})
}

func (m *PaymentManager) remoteCall(ctx context.Context, order *model.Order, remote *klarna.Order, event hook.Event[*klarna.Order], call func(klarna.API, *klarna.Order) error) error {
	if remote == nil {
		var err error
		if remote, err = m.GetOrder(ctx, order); err != nil {
			return err
		}
	}
	api, _, err := m.api(order)
	if err != nil {
		return err
	}

	remote = hook.Dispatch(ctx, m.hooks, event, order, remote)
	if remote == nil {
		return invalidArgument("order is not set")
	}
	return call(api, remote)
}

// HandleNotificationEvent dispatches fraud decision hooks. State changes belong to listeners.
func (m *PaymentManager) HandleNotificationEvent(ctx context.Context, order *model.Order, fraudStatus string) error {
	outcome, ok := fraudEvents[fraudStatus]
	if !ok {
		return invalidArgument("unknown fraud status %q", fraudStatus)
	}

	remote, err := m.GetOrder(ctx, order)
	if err != nil {
		return err
	}

	switch outcome {
	case fraudAccepted:
		hook.Dispatch(ctx, m.hooks, hook.FraudAccepted, order, remote)
	case fraudRejected:
		hook.Dispatch(ctx, m.hooks, hook.FraudRejected, order, remote)
	case fraudStopped:
		hook.Dispatch(ctx, m.hooks, hook.FraudStopped, order, remote)
	}
	return nil
}
