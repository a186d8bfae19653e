package ports

import (
	"context"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	"github.com/Apurer/gomitas-api/internal/domains/users/domain"
)

// Service manages the user directory and resolves callers into actors.
type Service interface {
	Register(ctx context.Context, actor accessdomain.Actor, name, email string, role accessdomain.Role) (*domain.User, error)
	EnsureUser(ctx context.Context, name, email string, role accessdomain.Role) (*domain.User, error)
	Resolve(ctx context.Context, id int64) (accessdomain.Actor, error)
	List(ctx context.Context, actor accessdomain.Actor) ([]*domain.User, error)
}
