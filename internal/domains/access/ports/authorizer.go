package ports

import (
	"errors"

	"github.com/Apurer/gomitas-api/internal/domains/access/domain"
)

// ErrForbidden is returned when the actor lacks the permission for the resource.
var ErrForbidden = errors.New("forbidden")

// Authorizer answers yes/no questions about actors, permissions and resource ownership.
type Authorizer interface {
	Authorize(actor domain.Actor, permission domain.Permission, resource domain.Resource) error
	Scope(actor domain.Actor, permission domain.Permission) domain.Scope
}
