package mapper

import (
	"errors"

	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	orderapp "github.com/Apurer/gomitas-api/internal/domains/orders/application"
	orderdomain "github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/gomitas-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/gomitas-api/internal/shared/errors"
)

// Problem maps order engine errors onto problem details. It satisfies apierrors.ErrorMapper.
func Problem(err error) (apierrors.ProblemDetail, bool) {
	var insufficient *inventorydomain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return apierrors.NewInsufficientStockProblem(insufficient.ProductID, insufficient.Requested, insufficient.Available, insufficient.Tracked), true
	}
	var transition *orderdomain.InvalidTransitionError
	if errors.As(err, &transition) {
		return apierrors.NewInvalidTransitionProblem(string(transition.From), string(transition.To)), true
	}
	switch {
	case errors.Is(err, orderports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, orderports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail("idempotency key was already used with a different request"), true
	case errors.Is(err, orderapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
