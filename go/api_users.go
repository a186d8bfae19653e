package gomitasserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	userhttpmapper "github.com/Apurer/gomitas-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/gomitas-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/gomitas-api/internal/shared/errors"
)

// UsersAPI manages the directory of actors. Admin only.
type UsersAPI struct {
	service userports.Service
}

func NewUsersAPI(service userports.Service) UsersAPI {
	return UsersAPI{service: service}
}

// Get /v1/users
func (api *UsersAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context(), currentActor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUsers(users))
}

// Post /v1/users
func (api *UsersAPI) RegisterUser(c *gin.Context) {
	var payload RegisterUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	role, err := accessdomain.ParseRole(payload.Role)
	if err != nil {
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	user, err := api.service.Register(c.Request.Context(), currentActor(c), payload.Name, payload.Email, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromDomainUser(user))
}
