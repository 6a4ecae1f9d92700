// Package hook provides ordered, synchronous interception points around Klarna calls.
package hook

import (
	"context"
	"sync"

	"github.com/polkiloo/klarnapay/internal/domain/model"
)

// Event is a named interception point carrying payload of type T.
type Event[T any] struct {
	name string
}

// NewEvent declares event with a name unique within a Dispatcher.
func NewEvent[T any](name string) Event[T] {
	return Event[T]{name: name}
}

// Name returns event name.
func (e Event[T]) Name() string {
	return e.name
}

// Envelope is what listeners see. Order is a copy; Data may be replaced.
type Envelope[T any] struct {
	Order *model.Order
	Data  T
}

// Listener observes or replaces envelope data.
type Listener[T any] func(ctx context.Context, env *Envelope[T])

// Dispatcher keeps listeners per event in registration order.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]any
}

// NewDispatcher creates empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[string][]any)}
}

// Subscribe appends listener for event.
func Subscribe[T any](d *Dispatcher, e Event[T], l Listener[T]) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[e.name] = append(d.listeners[e.name], l)
}

// Dispatch runs listeners of e in order and returns the final data.
// Listeners get a clone of order so their mutations don't leak back.
func Dispatch[T any](ctx context.Context, d *Dispatcher, e Event[T], order *model.Order, data T) T {
	if d == nil {
		return data
	}
	d.mu.RLock()
	registered := make([]any, len(d.listeners[e.name]))
	copy(registered, d.listeners[e.name])
	d.mu.RUnlock()

	if len(registered) == 0 {
		return data
	}

	env := &Envelope[T]{Order: order.Clone(), Data: data}
	for _, l := range registered {
		l.(Listener[T])(ctx, env)
	}
	return env.Data
}

// Count returns number of listeners subscribed to event name.
func (d *Dispatcher) Count(name string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[name])
}
