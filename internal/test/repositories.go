package test

import (
	"context"
	"maps"
	"sync"

	domainErrors "github.com/polkiloo/klarnapay/internal/domain/errors"
	"github.com/polkiloo/klarnapay/internal/domain/model"
)

// OrderRepositoryStub stores orders in-memory for tests.
type OrderRepositoryStub struct {
	mu       sync.Mutex
	Orders   map[int64]*model.Order
	Saves    int
	Err      error
	SaveErr  error
	UpsertFn func(context.Context, *model.Order) (bool, error)
}

// NewOrderRepositoryStub constructs stub preloaded with orders.
func NewOrderRepositoryStub(orders ...*model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[int64]*model.Order)}
	for _, o := range orders {
		s.Orders[o.ID] = o.Clone()
	}
	return s
}

// Get returns a copy of stored order.
func (s *OrderRepositoryStub) Get(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return o.Clone(), nil
}

// Upsert replaces order document keeping stored data bag.
func (s *OrderRepositoryStub) Upsert(ctx context.Context, order *model.Order) (bool, error) {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	existing, ok := s.Orders[order.ID]
	stored := order.Clone()
	if ok {
		stored.Data = existing.Data
		stored.TotalPaid = existing.TotalPaid
	}
	s.Orders[order.ID] = stored
	return !ok, nil
}

// SaveData merges data bag into stored order.
func (s *OrderRepositoryStub) SaveData(ctx context.Context, order *model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saves++
	stored, ok := s.Orders[order.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if stored.Data == nil {
		stored.Data = make(map[string]string)
	}
	maps.Copy(stored.Data, order.Data)
	return nil
}

// Stored returns stored order without copying, for assertions.
func (s *OrderRepositoryStub) Stored(id int64) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Orders[id]
}

// PaymentRepositoryStub keeps payments keyed by remote ID.
type PaymentRepositoryStub struct {
	mu       sync.Mutex
	Payments map[string]*model.Payment
	Next     int64
	Err      error
	Captured []model.Price
	Refunded []model.Price
}

// NewPaymentRepositoryStub constructs empty stub.
func NewPaymentRepositoryStub() *PaymentRepositoryStub {
	return &PaymentRepositoryStub{Payments: make(map[string]*model.Payment), Next: 1}
}

func (s *PaymentRepositoryStub) CreateIfMissing(ctx context.Context, payment *model.Payment) (*model.Payment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, false, s.Err
	}
	if existing, ok := s.Payments[payment.RemoteID]; ok {
		cp := *existing
		return &cp, false, nil
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *payment
	stored.ID = s.Next
	s.Next++
	s.Payments[payment.RemoteID] = &stored
	cp := stored
	return &cp, true, nil
}

func (s *PaymentRepositoryStub) GetByRemoteID(ctx context.Context, remoteID string) (*model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Payments[remoteID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *PaymentRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Payment
	for _, p := range s.Payments {
		if p.OrderID == orderID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (s *PaymentRepositoryStub) UpdateState(ctx context.Context, remoteID string, state model.PaymentState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	p, ok := s.Payments[remoteID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.State = state
	return nil
}

func (s *PaymentRepositoryStub) RecordCapture(ctx context.Context, remoteID string, amount model.Price) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	p, ok := s.Payments[remoteID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.State = model.PaymentStateCompleted
	s.Captured = append(s.Captured, amount)
	return nil
}

func (s *PaymentRepositoryStub) RecordRefund(ctx context.Context, remoteID string, amount model.Price) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	p, ok := s.Payments[remoteID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.State = model.PaymentStatePartiallyRefunded
	s.Refunded = append(s.Refunded, amount)
	return nil
}
