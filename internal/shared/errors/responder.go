package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// RequestIDKey is the gin context key holding the request id. When present it
// is echoed in every problem as the requestId extension.
const RequestIDKey = "gomitas.request_id"

// ErrorMapper translates a domain error into a problem, reporting whether it applied.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem+json responses. Errors go through the mappers in
// registration order; the first match wins.
type Responder struct {
	baseURI string
	mappers []ErrorMapper
}

// NewResponder builds a responder. baseURI, when set, is prepended to relative problem types.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{baseURI: baseURI, mappers: mappers}
}

// Problem resolves err without writing anything. Unmapped errors become a
// 500 that does not leak their message.
func (r *Responder) Problem(err error) ProblemDetail {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}
	return ErrInternal.WithDetail("the request could not be completed")
}

// Respond writes problem, filling in the instance and request id.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	if id := c.GetString(RequestIDKey); id != "" {
		problem = problem.WithExtension("requestId", id)
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError maps err and writes the result. Server errors keep their
// cause on the gin context so the access log records it.
func (r *Responder) RespondError(c *gin.Context, err error) {
	problem := r.Problem(err)
	if problem.Status >= 500 {
		_ = c.Error(err)
	}
	r.Respond(c, problem)
}
