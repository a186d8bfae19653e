package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSoldOut = errors.New("sold out")

func respond(t *testing.T, responder *Responder, requestID string, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/orders", nil)
	if requestID != "" {
		c.Set(RequestIDKey, requestID)
	}
	responder.RespondError(c, err)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestResponder_UsesFirstMatchingMapper(t *testing.T) {
	responder := NewResponder("",
		func(err error) (ProblemDetail, bool) { return ProblemDetail{}, false },
		func(err error) (ProblemDetail, bool) {
			if errors.Is(err, errSoldOut) {
				return NewInsufficientStockProblem(7, 3, 1, true), true
			}
			return ProblemDetail{}, false
		},
		func(err error) (ProblemDetail, bool) { return ErrInternal, true },
	)

	rec, problem := respond(t, responder, "", errSoldOut)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeInsufficientStock, problem.Type)
	assert.Equal(t, "/v1/orders", problem.Instance)
	assert.NotContains(t, problem.Extensions, "requestId")
}

func TestResponder_HidesUnmappedErrors(t *testing.T) {
	responder := NewResponder("https://gomitas.example")

	rec, problem := respond(t, responder, "", errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "https://gomitas.example"+TypeInternal, problem.Type)
	assert.NotContains(t, problem.Detail, "connection refused")
}

func TestResponder_PassesProblemDetailsThrough(t *testing.T) {
	responder := NewResponder("")

	rec, problem := respond(t, responder, "", NewInvalidTransitionProblem("cancelled", "shipped"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "cancelled", problem.Extensions["from"])
	assert.Equal(t, "shipped", problem.Extensions["to"])
}

func TestResponder_EchoesRequestID(t *testing.T) {
	responder := NewResponder("")

	_, problem := respond(t, responder, "req-42", ErrForbidden)
	assert.Equal(t, "req-42", problem.Extensions["requestId"])
	assert.Nil(t, ErrForbidden.Extensions)
}

func TestWithExtension_LeavesReceiverUntouched(t *testing.T) {
	base := ErrConflict.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)

	assert.Len(t, base.Extensions, 1)
	assert.Len(t, derived.Extensions, 2)
	assert.EqualError(t, ErrConflict.WithDetail("dup"), "Conflict: dup")
}
