package postgres

import (
	"strings"

	"userhub/internal/errors"
	"userhub/internal/infra/persistence/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
)

// uniqueViolation reports whether err is a unique violation and, when known, the constraint name.
func uniqueViolation(err error) (constraint string, ok bool) {
	if pgErr, isPg := errors.AsType[*pgconn.PgError](err); isPg {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}

		return pgErr.ConstraintName, true
	}

	// Raised instead of the driver error when TranslateError is enabled
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return constraintFromMessage(err.Error()), true
	}

	return "", false
}

func isNotNullConstraintViolation(err error) bool {
	if pgErr, ok := errors.AsType[*pgconn.PgError](err); ok {
		return pgErr.Code == pgNotNullViolation
	}

	return strings.Contains(strings.ToLower(err.Error()), "null value")
}

func isCheckConstraintViolation(err error) bool {
	if pgErr, ok := errors.AsType[*pgconn.PgError](err); ok {
		return pgErr.Code == pgCheckViolation
	}

	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}

// constraintFromMessage recovers a known constraint name from a translated error message.
func constraintFromMessage(msg string) string {
	for _, name := range []string{model.UsersUsernameKey, model.UsersEmailKey} {
		if strings.Contains(msg, name) {
			return name
		}
	}

	return ""
}
