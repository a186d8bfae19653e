package domain

import (
	"errors"
	"strings"
)

// Role groups actors that share the same permission set.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleCustomer Role = "customer"
)

var ErrInvalidRole = errors.New("role is invalid")

// ParseRole normalizes a stored or transported role name.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	switch role {
	case RoleAdmin, RoleEditor, RoleCustomer:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

// Permission names an action the gate can allow or deny.
type Permission string

const (
	OrdersView    Permission = "orders.view"
	OrdersCreate  Permission = "orders.create"
	OrdersProcess Permission = "orders.process"
	OrdersCancel  Permission = "orders.cancel"
	OrdersDelete  Permission = "orders.delete"

	InventoryView   Permission = "inventory.view"
	InventoryCreate Permission = "inventory.create"
	InventoryAdjust Permission = "inventory.adjust"
	InventoryDelete Permission = "inventory.delete"

	ProductsView   Permission = "products.view"
	ProductsCreate Permission = "products.create"
	ProductsEdit   Permission = "products.edit"
	ProductsDelete Permission = "products.delete"

	UsersManage Permission = "users.manage"
)

// Scope describes how far a grant reaches.
type Scope int

const (
	// ScopeNone denies the permission.
	ScopeNone Scope = iota
	// ScopeOwn allows the permission on resources owned by the actor.
	ScopeOwn
	// ScopeAny allows the permission on every resource.
	ScopeAny
)

// Actor is the authenticated caller as seen by the domain services.
type Actor struct {
	ID   int64
	Role Role
}

// Resource identifies the owner of the thing being acted on. Zero OwnerID means unowned.
type Resource struct {
	OwnerID int64
}

// OwnedBy builds a resource owned by the given user.
func OwnedBy(ownerID int64) Resource {
	return Resource{OwnerID: ownerID}
}

// Policy maps roles to their grants.
type Policy map[Role]map[Permission]Scope

// ScopeFor returns the grant for role and permission, ScopeNone when absent.
func (p Policy) ScopeFor(role Role, permission Permission) Scope {
	grants, ok := p[role]
	if !ok {
		return ScopeNone
	}
	return grants[permission]
}

// DefaultPolicy mirrors the storefront's role matrix: admins manage everything,
// editors process orders, customers work on their own orders only.
func DefaultPolicy() Policy {
	return Policy{
		RoleAdmin: {
			OrdersView:      ScopeAny,
			OrdersCreate:    ScopeAny,
			OrdersProcess:   ScopeAny,
			OrdersCancel:    ScopeAny,
			OrdersDelete:    ScopeAny,
			InventoryView:   ScopeAny,
			InventoryCreate: ScopeAny,
			InventoryAdjust: ScopeAny,
			InventoryDelete: ScopeAny,
			ProductsView:    ScopeAny,
			ProductsCreate:  ScopeAny,
			ProductsEdit:    ScopeAny,
			ProductsDelete:  ScopeAny,
			UsersManage:     ScopeAny,
		},
		RoleEditor: {
			OrdersView:    ScopeAny,
			OrdersCreate:  ScopeAny,
			OrdersProcess: ScopeAny,
			OrdersCancel:  ScopeOwn,
			OrdersDelete:  ScopeOwn,
			ProductsView:  ScopeAny,
		},
		RoleCustomer: {
			OrdersView:   ScopeOwn,
			OrdersCreate: ScopeOwn,
			OrdersCancel: ScopeOwn,
			OrdersDelete: ScopeOwn,
			ProductsView: ScopeAny,
		},
	}
}
