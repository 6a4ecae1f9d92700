package app

import "sync"

// orderLocks serialises work per order ID inside one process.
type orderLocks struct {
	mu    sync.Mutex
	locks map[int64]*orderLock
}

type orderLock struct {
	sync.Mutex
	refs int
}

func newOrderLocks() *orderLocks {
	return &orderLocks{locks: make(map[int64]*orderLock)}
}

// lock blocks until the caller owns orderID and returns the matching unlock.
func (l *orderLocks) lock(orderID int64) func() {
	l.mu.Lock()
	entry, ok := l.locks[orderID]
	if !ok {
		entry = &orderLock{}
		l.locks[orderID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, orderID)
		}
		l.mu.Unlock()
	}
}

func (l *orderLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
