package mapper

import (
	"errors"

	catalogapp "github.com/Apurer/gomitas-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/gomitas-api/internal/shared/errors"
)

// Problem maps catalog errors onto problem details.
func Problem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "product"), true
	case errors.Is(err, catalogports.ErrInUse):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
