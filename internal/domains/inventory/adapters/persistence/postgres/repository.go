package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	"github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	"github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	"github.com/Apurer/gomitas-api/internal/platform/postgres/pgerrors"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists stock records and movements. Lock methods rely on the
// handle being a transaction; row locks are released when it ends.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type stockRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	ProductID int64     `gorm:"column:product_id"`
	Quantity  int64     `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stockRecord) TableName() string { return "stock_records" }

type movementRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	ProductID int64     `gorm:"column:product_id"`
	Delta     int64     `gorm:"column:delta"`
	Before    int64     `gorm:"column:quantity_before"`
	After     int64     `gorm:"column:quantity_after"`
	Reason    string    `gorm:"column:reason"`
	OrderID   *int64    `gorm:"column:order_id"`
	ActorID   int64     `gorm:"column:actor_id"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (movementRecord) TableName() string { return "stock_movements" }

func (r *Repository) LockByProduct(ctx context.Context, productID int64) (*domain.StockRecord, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record stockRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, pgerrors.Translate(err)
	}
	return record.toDomain(), nil
}

// LockOrCreate inserts an empty record when none exists, then locks it.
// Concurrent callers race on the unique product_id index; the loser's insert is a no-op.
func (r *Repository) LockOrCreate(ctx context.Context, productID int64) (*domain.StockRecord, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	empty := stockRecord{ProductID: productID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "product_id"}}, DoNothing: true}).
		Create(&empty).Error
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return nil, catalogports.ErrNotFound
		}
		return nil, pgerrors.Translate(err)
	}
	return r.LockByProduct(ctx, productID)
}

func (r *Repository) Create(ctx context.Context, record *domain.StockRecord) (*domain.StockRecord, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	rec := toRecord(record)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		switch {
		case pgerrors.IsUniqueViolation(err):
			return nil, ports.ErrAlreadyExists
		case pgerrors.IsForeignKeyViolation(err):
			return nil, catalogports.ErrNotFound
		case pgerrors.IsCheckViolation(err):
			return nil, domain.ErrNegativeQuantity
		}
		return nil, pgerrors.Translate(err)
	}
	return rec.toDomain(), nil
}

func (r *Repository) Save(ctx context.Context, record *domain.StockRecord) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	result := r.db.WithContext(ctx).Model(&stockRecord{}).
		Where("product_id = ?", record.ProductID).
		Updates(map[string]any{"quantity": record.Quantity, "updated_at": updatedAt})
	if result.Error != nil {
		if pgerrors.IsCheckViolation(result.Error) {
			return domain.ErrNegativeQuantity
		}
		return pgerrors.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) GetByProduct(ctx context.Context, productID int64) (*domain.StockRecord, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record stockRecord
	if err := r.db.WithContext(ctx).First(&record, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, pgerrors.Translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.StockRecord, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []stockRecord
	if err := r.db.WithContext(ctx).Order("product_id").Find(&records).Error; err != nil {
		return nil, pgerrors.Translate(err)
	}
	out := make([]*domain.StockRecord, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, productID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&stockRecord{})
	if result.Error != nil {
		return pgerrors.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) AppendMovement(ctx context.Context, movement domain.Movement) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	rec := movementRecord{
		ProductID: movement.ProductID,
		Delta:     movement.Delta,
		Before:    movement.Before,
		After:     movement.After,
		Reason:    string(movement.Reason),
		OrderID:   movement.OrderID,
		ActorID:   movement.ActorID,
		CreatedAt: movement.CreatedAt,
	}
	return pgerrors.Translate(r.db.WithContext(ctx).Create(&rec).Error)
}

// ListMovements returns the newest movements of a product first.
func (r *Repository) ListMovements(ctx context.Context, productID int64, limit int) ([]domain.Movement, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var records []movementRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, pgerrors.Translate(err)
	}
	out := make([]domain.Movement, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.Movement{
			ID:        rec.ID,
			ProductID: rec.ProductID,
			Delta:     rec.Delta,
			Before:    rec.Before,
			After:     rec.After,
			Reason:    domain.Reason(rec.Reason),
			OrderID:   rec.OrderID,
			ActorID:   rec.ActorID,
			CreatedAt: rec.CreatedAt,
		})
	}
	return out, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres stock repository not configured")
	}
	return nil
}

func toRecord(record *domain.StockRecord) stockRecord {
	return stockRecord{
		ID:        record.ID,
		ProductID: record.ProductID,
		Quantity:  record.Quantity,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func (r stockRecord) toDomain() *domain.StockRecord {
	return &domain.StockRecord{
		ID:        r.ID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
