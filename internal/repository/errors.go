package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	PgErrUniqueViolation = "23505"
	PgErrCheckViolation  = "23514"
)

func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// IsUniqueViolation повтор первичного ключа или уникального индекса.
func IsUniqueViolation(err error) bool {
	return IsPgErrorWithCode(err, PgErrUniqueViolation)
}
