package repositories

import (
	"database/sql"
	"errors"

	intconfig "dpxcruise/internal/config"
	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain"
)

// conn falls back to the shared connection when a repository is built
// without an explicit handle.
func conn(db intdb.DBTX) intdb.DBTX {
	if db != nil {
		return db
	}
	return intconfig.DB
}

func notFound(err error, resource string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
