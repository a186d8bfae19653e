package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
)

var (
	// ErrInvalidInput signals the request violated a stock invariant.
	ErrInvalidInput = errors.New("invalid stock input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrNegativeQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
