package e

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

const (
	// PQErr42P01 pq: relation "<string>" does not exist
	PQErr42P01 = "42P01"
)

// IsPQError checks if the passed error is the specified Postgres error code
func IsPQError(err error, errorCode string) bool {
	var pqerr *pq.Error
	return errors.As(err, &pqerr) && string(pqerr.Code) == errorCode
}

// IsNoRowsPQError returns whether the error is a pg sql no rows found
func IsNoRowsPQError(err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	return ContainsError(err, "sql: no rows in result set")
}

// ContainsError checks if the error contains the specified error message
func ContainsError(err error, msg string) bool {
	return err != nil && strings.Contains(err.Error(), msg)
}
