package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrDuplicate is returned when an insert hits a UNIQUE constraint.
// Services translate it into the matching business rule (seat occupied,
// slot taken, ...).
var ErrDuplicate = errors.New("duplicate row")

// ErrReferenced is returned when a FOREIGN KEY blocks the statement: a
// delete of a row that still has dependents, or an insert pointing at a
// row that does not exist.
var ErrReferenced = errors.New("row referenced by or referencing missing rows")

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify wraps constraint violations with the matching sentinel so callers
// can use errors.Is; other errors pass through unchanged.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrReferenced, err)
	}
	return err
}

// ConstraintName reports which constraint a classified error came from.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func clockToPg(t time.Time) pgtype.Time {
	d := time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}

func clockFromPg(t pgtype.Time) time.Time {
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(t.Microseconds) * time.Microsecond)
}
