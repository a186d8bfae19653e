package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	"github.com/Apurer/gomitas-api/internal/domains/users/domain"
	"github.com/Apurer/gomitas-api/internal/domains/users/ports"
	"github.com/Apurer/gomitas-api/internal/platform/postgres/pgerrors"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists directory users in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Role      string    `gorm:"column:role"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(user)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ports.ErrEmailTaken
		}
		return nil, pgerrors.Translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *Repository) first(ctx context.Context, cond string, arg any) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, pgerrors.Translate(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, pgerrors.Translate(err)
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      accessdomain.Role(r.Role),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
