package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/gomitas-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrUnknownIntent is returned for an intent variant the engine does not handle.
	ErrUnknownIntent = errors.New("unknown order intent")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidOwner) ||
		errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidUnitPrice) ||
		errors.Is(err, domain.ErrNoLines) ||
		errors.Is(err, domain.ErrTotalTooLarge) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, ErrUnknownIntent) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
