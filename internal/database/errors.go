package database

import (
	"errors"
	"fmt"

	"github.com/freitasmatheusrn/liquid-catalog/pkg/rest"
	"github.com/jackc/pgx/v5/pgconn"
)

var errorMap = map[string]string{
	//UniqueViolation
	"23505": "duplicate key",
	//ForeignKeyViolation
	"23503": "references a missing row",
	//NotNullViolation
	"23502": "must not be null",
	//CheckViolation
	"23514": "violates a check constraint",
	//SerializationFailure
	"40001": "concurrent update, retry",
}

// Describe turns a Postgres error into a short readable cause. Other errors
// are returned as their message.
func Describe(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err.Error()
	}
	msg, ok := errorMap[pgErr.Code]
	if !ok {
		return fmt.Sprintf("postgres error %s: %s", pgErr.Code, pgErr.Message)
	}
	if pgErr.TableName != "" {
		return fmt.Sprintf("%s: %s (%s)", pgErr.TableName, msg, pgErr.ConstraintName)
	}
	return msg
}

// GetError maps a storage error to an API error carrying its cause.
func GetError(err error) *rest.ApiErr {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return rest.NewInternalServerError("storage error")
	}
	cause := rest.Causes{
		Field:   pgErr.TableName,
		Message: Describe(pgErr),
	}
	apiErr := rest.NewInternalServerError("failed to store catalog")
	apiErr.Causes = []rest.Causes{cause}
	return apiErr
}
