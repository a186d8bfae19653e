package orders

import (
	"errors"
	"fmt"
	"strings"

	"go.temporal.io/sdk/temporal"

	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	orderapp "github.com/Apurer/gomitas-api/internal/domains/orders/application"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
)

// Application error types carried across the workflow boundary.
const (
	ErrTypeInsufficientStock   = "InsufficientStock"
	ErrTypeProductNotFound     = "ProductNotFound"
	ErrTypeForbidden           = "Forbidden"
	ErrTypeInvalidInput        = "InvalidInput"
	ErrTypeIdempotencyConflict = "IdempotencyConflict"
)

// InsufficientStockDetails is attached to ErrTypeInsufficientStock errors.
type InsufficientStockDetails struct {
	ProductID int64
	Requested int64
	Available int64
	Tracked   bool
}

// EncodeError turns business rejections into non-retryable application errors
// that DecodeError can restore. Other errors pass through unchanged.
func EncodeError(err error) error {
	var insufficient *inventorydomain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		details := InsufficientStockDetails{
			ProductID: insufficient.ProductID,
			Requested: insufficient.Requested,
			Available: insufficient.Available,
			Tracked:   insufficient.Tracked,
		}
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInsufficientStock, nil, details)
	case errors.Is(err, catalogports.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeProductNotFound, nil)
	case errors.Is(err, accessports.ErrForbidden):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeForbidden, nil)
	case errors.Is(err, orderapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, nil)
	case errors.Is(err, orderports.ErrIdempotencyConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeIdempotencyConflict, nil)
	}
	return err
}

// DecodeError restores the domain error behind a workflow failure.
func DecodeError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case ErrTypeInsufficientStock:
		var details InsufficientStockDetails
		if detailErr := appErr.Details(&details); detailErr != nil {
			return errors.Join(inventorydomain.ErrInsufficientStock, err)
		}
		return &inventorydomain.InsufficientStockError{
			ProductID: details.ProductID,
			Requested: details.Requested,
			Available: details.Available,
			Tracked:   details.Tracked,
		}
	case ErrTypeProductNotFound:
		return catalogports.ErrNotFound
	case ErrTypeForbidden:
		return accessports.ErrForbidden
	case ErrTypeInvalidInput:
		detail := strings.TrimPrefix(appErr.Message(), orderapp.ErrInvalidInput.Error())
		return fmt.Errorf("%w%s", orderapp.ErrInvalidInput, detail)
	case ErrTypeIdempotencyConflict:
		return orderports.ErrIdempotencyConflict
	}
	return err
}
