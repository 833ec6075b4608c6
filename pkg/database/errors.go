package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories translate into domain errors.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"
)

// PgErrorCode returns the SQLSTATE of err and the violated constraint name,
// or empty strings when err is not a server error.
func PgErrorCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func IsUniqueViolation(err error) bool {
	code, _ := PgErrorCode(err)
	return code == CodeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	code, _ := PgErrorCode(err)
	return code == CodeForeignKeyViolation
}

func IsCheckViolation(err error) bool {
	code, _ := PgErrorCode(err)
	return code == CodeCheckViolation
}
