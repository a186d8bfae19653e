package application

import (
	"errors"
	"fmt"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	"github.com/Apurer/gomitas-api/internal/domains/users/domain"
)

var (
	// ErrInvalidInput wraps validation failures.
	ErrInvalidInput = errors.New("invalid user input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, accessdomain.ErrInvalidRole) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
