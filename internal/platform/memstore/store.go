// Package memstore is an in-memory transactional store used when no database
// is configured and by the service tests. Writes are staged per transaction and
// applied on commit; row locks are per-key and held until the transaction ends.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	catalogdomain "github.com/Apurer/gomitas-api/internal/domains/catalog/domain"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	orderdomain "github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	userdomain "github.com/Apurer/gomitas-api/internal/domains/users/domain"
	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

const defaultLockTimeout = 5 * time.Second

var _ uow.UnitOfWork = (*Store)(nil)

// Store keeps the committed state of every aggregate.
type Store struct {
	mu          sync.RWMutex
	products    map[int64]*catalogdomain.Product
	stock       map[int64]*inventorydomain.StockRecord
	movements   []inventorydomain.Movement
	orders      map[int64]*orderdomain.Order
	idempotency map[string]orderports.IdempotencyRecord
	users       map[int64]*userdomain.User

	locks       *lockTable
	lockTimeout time.Duration
	now         func() time.Time

	productSeq  atomic.Int64
	stockSeq    atomic.Int64
	movementSeq atomic.Int64
	orderSeq    atomic.Int64
	lineSeq     atomic.Int64
	userSeq     atomic.Int64
}

// Option customises a Store.
type Option func(*Store)

// WithLockTimeout bounds how long a transaction waits for a row lock. Zero waits until the context is done.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.lockTimeout = d
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		products:    map[int64]*catalogdomain.Product{},
		stock:       map[int64]*inventorydomain.StockRecord{},
		orders:      map[int64]*orderdomain.Order{},
		idempotency: map[string]orderports.IdempotencyRecord{},
		users:       map[int64]*userdomain.User{},
		locks:       newLockTable(),
		lockTimeout: defaultLockTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Do runs fn in a new transaction. Staged writes are applied only when fn returns nil.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos uow.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t := newTx(s)
	defer t.releaseLocks()

	if err := fn(ctx, t); err != nil {
		return err
	}
	return t.commit()
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

func lockKey(kind string, id any) string {
	return fmt.Sprintf("%s:%v", kind, id)
}
