package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

// lockTable hands out exclusive per-key locks. Each lock is a one-slot channel
// so waiters can give up on context cancellation.
type lockTable struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{slots: map[string]chan struct{}{}}
}

func (l *lockTable) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// acquire blocks until key is free, timeout elapses or ctx is done.
func (l *lockTable) acquire(ctx context.Context, key string, timeout time.Duration) error {
	ch := l.slot(key)
	select {
	case ch <- struct{}{}:
		return nil
	default:
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	select {
	case ch <- struct{}{}:
		return nil
	case <-expired:
		return uow.ErrLockTimeout
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return uow.ErrLockTimeout
		}
		return ctx.Err()
	}
}

func (l *lockTable) release(key string) {
	<-l.slot(key)
}
