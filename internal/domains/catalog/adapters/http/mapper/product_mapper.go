package mapper

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	catalogapp "github.com/Apurer/gomitas-api/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/gomitas-api/internal/domains/catalog/application/types"
)

// Product is the transport shape of a catalog product. Stock is omitted when
// the product has no stock record.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Flavor    string    `json:"flavor,omitempty"`
	Size      string    `json:"size,omitempty"`
	Price     string    `json:"price"`
	Stock     *int64    `json:"stock,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromProductView converts a catalog view to its transport form.
func FromProductView(view *catalogtypes.ProductView) Product {
	if view == nil || view.Product == nil {
		return Product{}
	}
	p := view.Product
	return Product{
		ID:        p.ID,
		Name:      p.Name,
		Flavor:    p.Flavor,
		Size:      p.Size,
		Price:     p.Price.StringFixed(2),
		Stock:     view.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ParsePrice reads a decimal price as sent by clients, either "12.90" or 12.9.
func ParsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price %q is not a decimal", catalogapp.ErrInvalidInput, raw)
	}
	return price, nil
}

// ToCreateInput builds the create command.
func ToCreateInput(name, flavor, size, price string, initialStock *int64) (catalogtypes.CreateProductInput, error) {
	parsed, err := ParsePrice(price)
	if err != nil {
		return catalogtypes.CreateProductInput{}, err
	}
	return catalogtypes.CreateProductInput{
		Name:         name,
		Flavor:       flavor,
		Size:         size,
		Price:        parsed,
		InitialStock: initialStock,
	}, nil
}

// ToUpdateInput builds the patch command. Nil arguments leave the field unchanged.
func ToUpdateInput(id int64, name, flavor, size, price *string) (catalogtypes.UpdateProductInput, error) {
	input := catalogtypes.UpdateProductInput{ID: id, Name: name, Flavor: flavor, Size: size}
	if price != nil {
		parsed, err := ParsePrice(*price)
		if err != nil {
			return catalogtypes.UpdateProductInput{}, err
		}
		input.Price = &parsed
	}
	return input, nil
}
