package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes classified by the driver layer. Callers branch
// on these typed checks instead of inspecting message text.
const (
	codeInvalidCatalogName = "3D000" // database does not exist
	codeUniqueViolation    = "23505"
)

// IsDatabaseMissing reports whether err means the target database does
// not physically exist.
func IsDatabaseMissing(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeInvalidCatalogName
}

// IsUniqueViolation reports whether err is a unique-constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
