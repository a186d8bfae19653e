package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	"github.com/Apurer/gomitas-api/internal/platform/postgres/pgerrors"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore persists order placement keys in PostgreSQL.
type IdempotencyStore struct {
	db *gorm.DB
}

func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     int64     `gorm:"column:order_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }

// Get returns the stored record for the key, or nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pgerrors.Translate(err)
	}
	return record.toPort(), nil
}

// Save inserts the key. A concurrent insert of the same key waits for the other
// transaction, so the stored record is always the committed winner.
func (s *IdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rec := idempotencyRecord{
		Key:         record.Key,
		RequestHash: record.RequestHash,
		OrderID:     record.OrderID,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   now,
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&rec)
	if result.Error != nil {
		return nil, pgerrors.Translate(result.Error)
	}
	if result.RowsAffected == 1 {
		return rec.toPort(), nil
	}
	existing, err := s.Get(ctx, record.Key)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.New("idempotency key vanished after conflict")
	}
	if existing.RequestHash != record.RequestHash {
		return existing, ports.ErrIdempotencyConflict
	}
	return existing, ports.ErrDuplicateRequest
}

// DeleteByOrder drops the keys of a deleted order so they can be reused.
func (s *IdempotencyStore) DeleteByOrder(ctx context.Context, orderID int64) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&idempotencyRecord{}).Error; err != nil {
		return pgerrors.Translate(err)
	}
	return nil
}

// PurgeOlderThan removes keys recorded before cutoff and reports how many were dropped.
// A purged key no longer replays; a retry with it places a new order.
func (s *IdempotencyStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&idempotencyRecord{})
	if result.Error != nil {
		return 0, pgerrors.Translate(result.Error)
	}
	return result.RowsAffected, nil
}

func (s *IdempotencyStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres idempotency store not configured")
	}
	return nil
}

func (r idempotencyRecord) toPort() *ports.IdempotencyRecord {
	return &ports.IdempotencyRecord{
		Key:         r.Key,
		RequestHash: r.RequestHash,
		OrderID:     r.OrderID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
