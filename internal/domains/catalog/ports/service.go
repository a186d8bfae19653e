package ports

import (
	"context"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	catalogtypes "github.com/Apurer/gomitas-api/internal/domains/catalog/application/types"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

// Service defines the catalog use cases exposed to adapters.
type Service interface {
	CreateProduct(ctx context.Context, actor accessdomain.Actor, input catalogtypes.CreateProductInput) (*catalogtypes.ProductView, error)
	UpdateProduct(ctx context.Context, actor accessdomain.Actor, input catalogtypes.UpdateProductInput) (*catalogtypes.ProductView, error)
	DeleteProduct(ctx context.Context, actor accessdomain.Actor, id int64) error
	GetProduct(ctx context.Context, actor accessdomain.Actor, id int64) (*catalogtypes.ProductView, error)
	ListProducts(ctx context.Context, actor accessdomain.Actor, query pagination.Query) (pagination.Page[*catalogtypes.ProductView], error)
}
