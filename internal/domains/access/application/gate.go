package application

import (
	"fmt"

	"github.com/Apurer/gomitas-api/internal/domains/access/domain"
	"github.com/Apurer/gomitas-api/internal/domains/access/ports"
)

// Gate evaluates a role policy. It holds no per-request state.
type Gate struct {
	policy domain.Policy
}

// NewGate builds a gate over policy, falling back to the default role matrix.
func NewGate(policy domain.Policy) *Gate {
	if policy == nil {
		policy = domain.DefaultPolicy()
	}
	return &Gate{policy: policy}
}

// Authorize returns nil when actor may use permission on resource.
func (g *Gate) Authorize(actor domain.Actor, permission domain.Permission, resource domain.Resource) error {
	switch g.Scope(actor, permission) {
	case domain.ScopeAny:
		return nil
	case domain.ScopeOwn:
		if actor.ID != 0 && resource.OwnerID == actor.ID {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q lacks %s", ports.ErrForbidden, actor.Role, permission)
}

func (g *Gate) Scope(actor domain.Actor, permission domain.Permission) domain.Scope {
	return g.policy.ScopeFor(actor.Role, permission)
}

var _ ports.Authorizer = (*Gate)(nil)
