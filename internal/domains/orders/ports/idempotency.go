package ports

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrIdempotencyConflict indicates the same key was used with a different payload.
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	// ErrDuplicateRequest indicates the key was already recorded for the same payload.
	ErrDuplicateRequest = errors.New("idempotency key already recorded")
)

// IdempotencyRecord captures the association between a client-supplied key and the order it created.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IdempotencyStore persists idempotency keys so retried placements can be replayed.
type IdempotencyStore interface {
	// Get returns the stored record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save stores the record. When the key exists it returns the stored record with
	// ErrDuplicateRequest for a matching hash and ErrIdempotencyConflict otherwise.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
	// DeleteByOrder drops every key that points at orderID.
	DeleteByOrder(ctx context.Context, orderID int64) error
}
