package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a record violates a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)

// mapPgError translates driver errors into repository sentinels.
func mapPgError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case apperrors.IsUniqueViolation(err):
		return ErrConflict
	default:
		return err
	}
}
