package repo

import (
	"errors"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const pqUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint failure in any supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
