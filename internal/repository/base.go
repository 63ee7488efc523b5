// Package repository implements the data access layer for the application.
package repository

import (
	"errors"

	"agora/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes relevant to the error taxonomy.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isConstraintViolation(err error) bool {
	switch pgErrorCode(err) {
	case pgForeignKeyViolation, pgNotNullViolation, pgCheckViolation:
		return true
	}
	return false
}

// translateWriteError maps storage errors onto the domain taxonomy: unique
// violations become conflicts with the given message, other constraint
// violations become integrity errors (the transaction has been rolled back),
// everything else is internal.
func translateWriteError(err error, conflictMessage string) error {
	switch {
	case isUniqueViolation(err):
		return models.NewConflictError(conflictMessage)
	case isConstraintViolation(err):
		return models.NewIntegrityError(err)
	default:
		return models.NewInternalError(err)
	}
}
