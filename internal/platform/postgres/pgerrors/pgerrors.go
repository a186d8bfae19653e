// Package pgerrors classifies PostgreSQL driver errors for the persistence adapters.
package pgerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

// SQLSTATE codes the adapters react to.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
	CodeLockNotAvailable    = "55P03"
	CodeDeadlockDetected    = "40P01"
)

// Code returns the SQLSTATE of err, or "" when err did not come from the server.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func IsUniqueViolation(err error) bool { return Code(err) == CodeUniqueViolation }

func IsForeignKeyViolation(err error) bool { return Code(err) == CodeForeignKeyViolation }

func IsCheckViolation(err error) bool { return Code(err) == CodeCheckViolation }

// Translate maps lock failures onto the unit-of-work sentinels and leaves other errors intact.
func Translate(err error) error {
	switch Code(err) {
	case CodeLockNotAvailable:
		return errors.Join(uow.ErrLockTimeout, err)
	case CodeDeadlockDetected:
		return errors.Join(uow.ErrDeadlock, err)
	default:
		return err
	}
}
