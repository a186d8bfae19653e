// Package errors provides RFC 7807 Problem Details for HTTP APIs.
package errors

import (
	"fmt"
	"maps"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem. It doubles as an error so services
// can return one directly; the responder passes it through untouched.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Extensions stay nested rather than flattened into the top-level object.
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return p.Title + ": " + p.Detail
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with an additional extension property. The
// receiver's extensions are never modified.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	maps.Copy(extensions, p.Extensions)
	extensions[key] = value
	p.Extensions = extensions
	return p
}

// Common problem types as URI references.
const (
	TypeValidation   = "/problems/validation-error"
	TypeNotFound     = "/problems/not-found"
	TypeConflict     = "/problems/conflict"
	TypeInternal     = "/problems/internal-error"
	TypeUnauthorized = "/problems/unauthorized"
	TypeForbidden    = "/problems/forbidden"
	TypeBadRequest   = "/problems/bad-request"

	TypeInsufficientStock = "/problems/insufficient-stock"
	TypeInvalidTransition = "/problems/invalid-transition"
)

// Pre-defined problem templates for common scenarios.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	// ErrValidation indicates the request failed validation.
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	// ErrConflict indicates a conflict with the current state.
	ErrConflict = ProblemDetail{
		Type:   TypeConflict,
		Title:  "Conflict",
		Status: http.StatusConflict,
	}

	// ErrInternal indicates an unexpected server error.
	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}

	// ErrUnauthorized indicates missing or invalid authentication.
	ErrUnauthorized = ProblemDetail{
		Type:   TypeUnauthorized,
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
	}

	// ErrForbidden indicates the action is not allowed.
	ErrForbidden = ProblemDetail{
		Type:   TypeForbidden,
		Title:  "Forbidden",
		Status: http.StatusForbidden,
	}

	// ErrInsufficientStock indicates an order line asked for more than is on hand.
	ErrInsufficientStock = ProblemDetail{
		Type:   TypeInsufficientStock,
		Title:  "Insufficient Stock",
		Status: http.StatusConflict,
	}

	// ErrInvalidTransition indicates the order status forbids the requested change.
	ErrInvalidTransition = ProblemDetail{
		Type:   TypeInvalidTransition,
		Title:  "Invalid Status Transition",
		Status: http.StatusConflict,
	}
)

// NewInsufficientStockProblem describes a rejected line. stockRecord is false
// when the product has never been stocked, as opposed to being stocked at zero.
func NewInsufficientStockProblem(productID, requested, available int64, stockRecord bool) ProblemDetail {
	detail := fmt.Sprintf("product %d: requested %d, available %d", productID, requested, available)
	if !stockRecord {
		detail = fmt.Sprintf("product %d has no stock record", productID)
	}
	return ErrInsufficientStock.
		WithDetail(detail).
		WithExtension("productId", productID).
		WithExtension("requested", requested).
		WithExtension("available", available).
		WithExtension("stockRecord", stockRecord)
}

// NewInvalidTransitionProblem reports a status change the order lifecycle rejects.
func NewInvalidTransitionProblem(from, to string) ProblemDetail {
	return ErrInvalidTransition.
		WithDetail(fmt.Sprintf("order cannot move from %s to %s", from, to)).
		WithExtension("from", from).
		WithExtension("to", to)
}
