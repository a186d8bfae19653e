package types

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/gomitas-api/internal/domains/catalog/domain"
)

// CreateProductInput carries a new product and, optionally, its opening stock.
type CreateProductInput struct {
	Name         string
	Flavor       string
	Size         string
	Price        decimal.Decimal
	InitialStock *int64
}

// UpdateProductInput patches a product. Nil fields are left unchanged.
type UpdateProductInput struct {
	ID     int64
	Name   *string
	Flavor *string
	Size   *string
	Price  *decimal.Decimal
}

// ProductView is a product with its on-hand quantity. Stock is nil when the
// product has no stock record, which is different from a record holding zero.
type ProductView struct {
	Product *domain.Product
	Stock   *int64
}
