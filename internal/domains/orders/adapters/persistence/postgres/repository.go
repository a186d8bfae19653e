package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	"github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	"github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	"github.com/Apurer/gomitas-api/internal/platform/postgres/pgerrors"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists order headers and lines in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OwnerID   int64           `gorm:"column:owner_id"`
	Status    string          `gorm:"column:status"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(10,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type lineRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	OrderID   int64           `gorm:"column:order_id"`
	ProductID int64           `gorm:"column:product_id"`
	Quantity  int64           `gorm:"column:quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(8,2)"`
}

func (lineRecord) TableName() string { return "order_lines" }

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := orderRecord{
		OwnerID:   order.OwnerID,
		Status:    string(order.Status),
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, pgerrors.Translate(err)
	}
	return record.toDomain(nil), nil
}

func (r *Repository) AttachLines(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	lines := order.Lines()
	records := make([]lineRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, lineRecord{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	db := r.db.WithContext(ctx)
	if len(records) > 0 {
		if err := db.Create(&records).Error; err != nil {
			if pgerrors.IsForeignKeyViolation(err) {
				return catalogports.ErrNotFound
			}
			return pgerrors.Translate(err)
		}
	}
	result := db.Model(&orderRecord{}).Where("id = ?", order.ID).Update("total", order.Total)
	if result.Error != nil {
		return pgerrors.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	ids := make([]int64, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}
	order.AssignLineIDs(order.ID, ids)
	return nil
}

func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.load(ctx, id, true)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.load(ctx, id, false)
}

func (r *Repository) load(ctx context.Context, id int64, lock bool) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	q := r.db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var record orderRecord
	if err := q.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, pgerrors.Translate(err)
	}
	lines, err := r.linesFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return record.toDomain(lines[id]), nil
}

func (r *Repository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{"status": string(order.Status), "updated_at": order.UpdatedAt})
	if result.Error != nil {
		return pgerrors.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id).Delete(&lineRecord{}).Error; err != nil {
		return pgerrors.Translate(err)
	}
	result := db.Delete(&orderRecord{}, id)
	if result.Error != nil {
		return pgerrors.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns one page of matching orders, newest first, with their lines.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	page := filter.Page.Normalize()
	filtered := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&orderRecord{})
		if filter.OwnerID != nil {
			q = q.Where("owner_id = ?", *filter.OwnerID)
		}
		if filter.Status != nil {
			q = q.Where("status = ?", string(*filter.Status))
		}
		return q
	}
	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, pgerrors.Translate(err)
	}
	var records []orderRecord
	if err := filtered().Order("id DESC").Offset(page.Offset()).Limit(page.Limit()).Find(&records).Error; err != nil {
		return nil, 0, pgerrors.Translate(err)
	}
	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain(lines[records[i].ID]))
	}
	return orders, total, nil
}

func (r *Repository) ReferencesProduct(ctx context.Context, productID int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&lineRecord{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return false, pgerrors.Translate(err)
	}
	return count > 0, nil
}

func (r *Repository) linesFor(ctx context.Context, orderIDs []int64) (map[int64][]domain.Line, error) {
	out := make(map[int64][]domain.Line, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	var records []lineRecord
	if err := r.db.WithContext(ctx).Where("order_id IN ?", orderIDs).Order("id").Find(&records).Error; err != nil {
		return nil, pgerrors.Translate(err)
	}
	for _, rec := range records {
		out[rec.OrderID] = append(out[rec.OrderID], domain.Line{
			ID:        rec.ID,
			OrderID:   rec.OrderID,
			ProductID: rec.ProductID,
			Quantity:  rec.Quantity,
			UnitPrice: rec.UnitPrice,
		})
	}
	return out, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func (r orderRecord) toDomain(lines []domain.Line) *domain.Order {
	return domain.Restore(r.ID, r.OwnerID, domain.Status(r.Status), r.Total, r.CreatedAt, r.UpdatedAt, lines)
}
