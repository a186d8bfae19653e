package mapper

import (
	"errors"

	inventoryapp "github.com/Apurer/gomitas-api/internal/domains/inventory/application"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	apierrors "github.com/Apurer/gomitas-api/internal/shared/errors"
)

// Problem maps inventory errors onto problem details.
func Problem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, inventoryports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "stockRecord"), true
	case errors.Is(err, inventoryports.ErrAlreadyExists),
		errors.Is(err, inventorydomain.ErrQuantityOverflow):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, inventoryapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
