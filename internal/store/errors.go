package store

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a record does not exist, or exists but is
// outside the caller's ownership scope.
var ErrNotFound = errors.New("not found")

func expectAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
