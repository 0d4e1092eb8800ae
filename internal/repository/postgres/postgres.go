// Package postgres implements the repository interfaces against PostgreSQL
// using database/sql and lib/pq.
package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code raised when an insert breaks
// a unique constraint.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
