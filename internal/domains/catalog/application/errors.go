package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/gomitas-api/internal/domains/catalog/domain"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
)

var (
	// ErrInvalidInput signals the request violated a catalog invariant.
	ErrInvalidInput = errors.New("invalid product input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidID) ||
		errors.Is(err, inventorydomain.ErrNegativeQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
