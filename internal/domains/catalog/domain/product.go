package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidName  = errors.New("product name is required")
	ErrInvalidPrice = errors.New("product price must be at least 0.01 with at most two decimals")
	ErrInvalidID    = errors.New("product id must be greater than zero")
)

const maxNameLength = 255

// MinPrice is the lowest accepted unit price.
var MinPrice = decimal.New(1, -2)

// MaxPrice matches the numeric(8,2) column.
var MaxPrice = decimal.RequireFromString("999999.99")

// Product is a sellable candy. Its price is read fresh whenever an order line is created.
type Product struct {
	ID        int64
	Name      string
	Flavor    string
	Size      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProduct validates and constructs a product that has not been persisted yet.
func NewProduct(name, flavor, size string, price decimal.Decimal) (*Product, error) {
	p := &Product{
		Name:   strings.TrimSpace(name),
		Flavor: strings.TrimSpace(flavor),
		Size:   strings.TrimSpace(size),
		Price:  price,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces the catalog invariants.
func (p *Product) Validate() error {
	if p.Name == "" || len(p.Name) > maxNameLength {
		return ErrInvalidName
	}
	return validatePrice(p.Price)
}

// Rename changes the display attributes. Empty values leave a field untouched.
func (p *Product) Rename(name, flavor, size *string) error {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" || len(trimmed) > maxNameLength {
			return ErrInvalidName
		}
		p.Name = trimmed
	}
	if flavor != nil {
		p.Flavor = strings.TrimSpace(*flavor)
	}
	if size != nil {
		p.Size = strings.TrimSpace(*size)
	}
	return nil
}

// Reprice sets a new unit price. Existing order lines keep the price they captured.
func (p *Product) Reprice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.Price = price
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.LessThan(MinPrice) || price.GreaterThan(MaxPrice) {
		return ErrInvalidPrice
	}
	if !price.Round(2).Equal(price) {
		return ErrInvalidPrice
	}
	return nil
}
