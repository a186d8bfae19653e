package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/gomitas-api/internal/domains/catalog/domain"
	"github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	"github.com/Apurer/gomitas-api/internal/platform/postgres/pgerrors"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM. The handle is usually a transaction.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	Name      string          `gorm:"column:name"`
	Flavor    string          `gorm:"column:flavor"`
	Size      string          `gorm:"column:size"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(8,2)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, pgerrors.Translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":       product.Name,
			"flavor":     product.Flavor,
			"size":       product.Size,
			"price":      product.Price,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, pgerrors.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, product.ID)
}

// Delete removes a product. Order lines reference products with ON DELETE RESTRICT,
// so a referenced product surfaces as ErrInUse.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		if pgerrors.IsForeignKeyViolation(result.Error) {
			return ports.ErrInUse
		}
		return pgerrors.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, pgerrors.Translate(err)
	}
	return record.toDomain(), nil
}

// List returns one page of products ordered by id, plus the total count.
func (r *Repository) List(ctx context.Context, query pagination.Query) ([]*domain.Product, int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	query = query.Normalize()
	var total int64
	if err := r.db.WithContext(ctx).Model(&productRecord{}).Count(&total).Error; err != nil {
		return nil, 0, pgerrors.Translate(err)
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(query.Offset()).
		Limit(query.Limit()).
		Find(&records).Error; err != nil {
		return nil, 0, pgerrors.Translate(err)
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, total, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:        product.ID,
		Name:      product.Name,
		Flavor:    product.Flavor,
		Size:      product.Size,
		Price:     product.Price,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:        r.ID,
		Name:      r.Name,
		Flavor:    r.Flavor,
		Size:      r.Size,
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
