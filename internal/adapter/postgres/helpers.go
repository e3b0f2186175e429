package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Strob0t/Workboard/internal/domain"
	"github.com/Strob0t/Workboard/internal/domain/task"
)

// SQLSTATE codes the store translates into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidTextRepr     = "22P02"
)

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

// nullIfEmpty returns nil for empty strings (for nullable UUID columns).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// orEmpty returns items unchanged if non-nil, or an empty slice if nil.
// Useful to ensure JSON serialization produces [] instead of null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// dueDateArg converts an optional task date into a DATE parameter.
func dueDateArg(d *task.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// dueDateFromDB converts a scanned DATE column into an optional task date.
func dueDateFromDB(t *time.Time) *task.Date {
	if t == nil {
		return nil
	}
	d := task.NewDate(*t)
	return &d
}

// malformedID reports whether err is Postgres rejecting a parameter as
// invalid text for its column type, e.g. a non-UUID id. No row can match.
func malformedID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepr
}

// notFoundWrap wraps domain.ErrNotFound with the given message when err is
// pgx.ErrNoRows or a malformed id. Otherwise it wraps the original error.
func notFoundWrap(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, pgx.ErrNoRows) || malformedID(err) {
		return fmt.Errorf("%s: %w", msg, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// constraintWrap maps unique violations to domain.ErrConflict and foreign key
// violations to domain.ErrConflict with the constraint name. Other errors are
// wrapped unchanged.
func constraintWrap(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", msg, domain.ErrConflict)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: still referenced by %s: %w", msg, pgErr.ConstraintName, domain.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// execExpectOne verifies that an Exec affected exactly one row. If not
// (and err is nil), or the id was malformed, it returns domain.ErrNotFound
// with the given message.
func execExpectOne(tag pgconn.CommandTag, err error, format string, args ...any) error {
	if malformedID(err) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrNotFound)
	}
	if err != nil {
		return constraintWrap(err, format, args...)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrNotFound)
	}
	return nil
}
