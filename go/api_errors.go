package gomitasserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	cataloghttpmapper "github.com/Apurer/gomitas-api/internal/domains/catalog/adapters/http/mapper"
	inventoryhttpmapper "github.com/Apurer/gomitas-api/internal/domains/inventory/adapters/http/mapper"
	orderhttpmapper "github.com/Apurer/gomitas-api/internal/domains/orders/adapters/http/mapper"
	userhttpmapper "github.com/Apurer/gomitas-api/internal/domains/users/adapters/http/mapper"
	apierrors "github.com/Apurer/gomitas-api/internal/shared/errors"
)

// responder maps service errors in order: the order mapper runs first so an
// insufficient stock error is never reported as a generic catalog problem.
var responder = apierrors.NewResponder("",
	forbiddenProblem,
	orderhttpmapper.Problem,
	inventoryhttpmapper.Problem,
	cataloghttpmapper.Problem,
	userhttpmapper.Problem,
)

func forbiddenProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, accessports.ErrForbidden) {
		return apierrors.ErrForbidden.WithDetail("the actor is not allowed to perform this action"), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func badRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

// bindPathID reads a positive integer path parameter, answering 400 otherwise.
func bindPathID(c *gin.Context, name string) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
	})
	if err != nil {
		badRequest(c, fmt.Errorf("invalid format for parameter %s: %w", name, err))
		return 0, false
	}
	if id <= 0 {
		badRequest(c, fmt.Errorf("parameter %s must be greater than zero", name))
		return 0, false
	}
	return id, true
}
