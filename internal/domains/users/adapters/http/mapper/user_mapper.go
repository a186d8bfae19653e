package mapper

import (
	"errors"
	"time"

	userapp "github.com/Apurer/gomitas-api/internal/domains/users/application"
	userdomain "github.com/Apurer/gomitas-api/internal/domains/users/domain"
	userports "github.com/Apurer/gomitas-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/gomitas-api/internal/shared/errors"
)

// User represents the transport-layer shape of a directory entry.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainUser converts a domain user into the transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func FromDomainUsers(users []*userdomain.User) []User {
	out := make([]User, 0, len(users))
	for _, user := range users {
		out = append(out, FromDomainUser(user))
	}
	return out
}

// Problem maps user directory errors onto problem details.
func Problem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userports.ErrEmailTaken):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, userports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "user"), true
	case errors.Is(err, userapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
