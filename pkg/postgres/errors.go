package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories translate into domain failures.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// UniqueViolation returns the violated constraint name when err is a
// unique-constraint failure.
func UniqueViolation(err error) (string, bool) {
	return constraintFor(err, CodeUniqueViolation)
}

// ForeignKeyViolation returns the violated constraint name when err is a
// foreign-key failure.
func ForeignKeyViolation(err error) (string, bool) {
	return constraintFor(err, CodeForeignKeyViolation)
}

func constraintFor(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}
