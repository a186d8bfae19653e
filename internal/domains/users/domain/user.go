package domain

import (
	"errors"
	"strings"
	"time"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
)

var (
	ErrEmptyName    = errors.New("name is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
)

// User is a directory entry. Credentials live with the external identity provider.
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      accessdomain.Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser builds a user ensuring required invariants.
func NewUser(name, email string, role accessdomain.Role) (*User, error) {
	user := &User{
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
		Role:  role,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks name, email and role.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyName
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if _, err := accessdomain.ParseRole(string(u.Role)); err != nil {
		return err
	}
	return nil
}

// Actor returns the identity the authorization gate evaluates.
func (u *User) Actor() accessdomain.Actor {
	return accessdomain.Actor{ID: u.ID, Role: u.Role}
}
