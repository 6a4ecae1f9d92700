package test

import (
	"context"
	"sync"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	"github.com/polkiloo/klarnapay/internal/domain/model"
)

// KlarnaCall records one invocation of KlarnaAPIStub.
type KlarnaCall struct {
	Method         string
	ID             string
	IdempotencyKey string
	Body           any
}

// KlarnaAPIStub implements klarna.API with overridable functions and call recording.
// Unset functions succeed with zero values.
type KlarnaAPIStub struct {
	CreateSessionFn  func(context.Context, *klarna.SessionRequest) (*klarna.SessionCreated, error)
	UpdateSessionFn  func(context.Context, string, *klarna.SessionRequest) error
	ReadSessionFn    func(context.Context, string) (*klarna.Session, error)
	AuthorizeOrderFn func(context.Context, string, klarna.OrderPayload) (*klarna.AuthorizedOrder, error)
	GetOrderFn       func(context.Context, string) (*klarna.Order, error)
	CancelOrderFn    func(context.Context, string) error
	AcknowledgeFn    func(context.Context, string, string) error
	ReleaseFn        func(context.Context, string) error
	CreateCaptureFn  func(context.Context, string, *klarna.CaptureRequest, string) error
	CreateRefundFn   func(context.Context, string, *klarna.RefundRequest, string) error

	mu    sync.Mutex
	calls []KlarnaCall
}

func (s *KlarnaAPIStub) record(call KlarnaCall) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

// Calls returns recorded calls in order.
func (s *KlarnaAPIStub) Calls() []KlarnaCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]KlarnaCall(nil), s.calls...)
}

// Count returns number of calls to method.
func (s *KlarnaAPIStub) Count(method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (s *KlarnaAPIStub) CreateSession(ctx context.Context, req *klarna.SessionRequest) (*klarna.SessionCreated, error) {
	s.record(KlarnaCall{Method: "CreateSession", Body: req})
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, req)
	}
	return &klarna.SessionCreated{}, nil
}

func (s *KlarnaAPIStub) UpdateSession(ctx context.Context, id string, req *klarna.SessionRequest) error {
	s.record(KlarnaCall{Method: "UpdateSession", ID: id, Body: req})
	if s.UpdateSessionFn != nil {
		return s.UpdateSessionFn(ctx, id, req)
	}
	return nil
}

func (s *KlarnaAPIStub) ReadSession(ctx context.Context, id string) (*klarna.Session, error) {
	s.record(KlarnaCall{Method: "ReadSession", ID: id})
	if s.ReadSessionFn != nil {
		return s.ReadSessionFn(ctx, id)
	}
	return &klarna.Session{SessionID: id}, nil
}

func (s *KlarnaAPIStub) AuthorizeOrder(ctx context.Context, token string, payload klarna.OrderPayload) (*klarna.AuthorizedOrder, error) {
	s.record(KlarnaCall{Method: "AuthorizeOrder", ID: token, Body: payload})
	if s.AuthorizeOrderFn != nil {
		return s.AuthorizeOrderFn(ctx, token, payload)
	}
	return &klarna.AuthorizedOrder{}, nil
}

func (s *KlarnaAPIStub) GetOrder(ctx context.Context, id string) (*klarna.Order, error) {
	s.record(KlarnaCall{Method: "GetOrder", ID: id})
	if s.GetOrderFn != nil {
		return s.GetOrderFn(ctx, id)
	}
	return &klarna.Order{OrderID: id, Status: klarna.OrderStatusAuthorized}, nil
}

func (s *KlarnaAPIStub) CancelOrder(ctx context.Context, id string) error {
	s.record(KlarnaCall{Method: "CancelOrder", ID: id})
	if s.CancelOrderFn != nil {
		return s.CancelOrderFn(ctx, id)
	}
	return nil
}

func (s *KlarnaAPIStub) AcknowledgeOrder(ctx context.Context, id, key string) error {
	s.record(KlarnaCall{Method: "AcknowledgeOrder", ID: id, IdempotencyKey: key})
	if s.AcknowledgeFn != nil {
		return s.AcknowledgeFn(ctx, id, key)
	}
	return nil
}

func (s *KlarnaAPIStub) ReleaseRemainingAuthorization(ctx context.Context, id string) error {
	s.record(KlarnaCall{Method: "ReleaseRemainingAuthorization", ID: id})
	if s.ReleaseFn != nil {
		return s.ReleaseFn(ctx, id)
	}
	return nil
}

func (s *KlarnaAPIStub) CreateCapture(ctx context.Context, id string, req *klarna.CaptureRequest, key string) error {
	s.record(KlarnaCall{Method: "CreateCapture", ID: id, IdempotencyKey: key, Body: req})
	if s.CreateCaptureFn != nil {
		return s.CreateCaptureFn(ctx, id, req, key)
	}
	return nil
}

func (s *KlarnaAPIStub) CreateRefund(ctx context.Context, id string, req *klarna.RefundRequest, key string) error {
	s.record(KlarnaCall{Method: "CreateRefund", ID: id, IdempotencyKey: key, Body: req})
	if s.CreateRefundFn != nil {
		return s.CreateRefundFn(ctx, id, req, key)
	}
	return nil
}

// ClientProviderStub hands out the same API for every gateway.
type ClientProviderStub struct {
	API klarna.API
	Err error
}

func (s ClientProviderStub) Client(*model.Gateway) (klarna.API, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.API, nil
}

// GatewaysStub serves gateways from a map keyed by ID.
type GatewaysStub map[string]*model.Gateway

func (s GatewaysStub) Gateway(id string) (*model.Gateway, bool) {
	gw, ok := s[id]
	return gw, ok
}

// TestGateway returns a valid Klarna gateway with the given ID.
func TestGateway(id string) *model.Gateway {
	return &model.Gateway{
		ID:       id,
		Plugin:   model.PluginKlarnaPayments,
		Username: "user",
		Password: "pass",
		Region:   "eu",
		Mode:     "test",
		Locale:   model.LocaleAutomatic,
	}
}
