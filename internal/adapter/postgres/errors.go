package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

// SQLSTATE codes MapError understands.
const (
	codeNotNullViolation     = "23502"
	codeForeignKeyViolation  = "23503"
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// MapError wraps err with the entity and id and translates pgx errors into
// domain sentinels. Context errors keep their identity.
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	wrap := func(target error) error { return fmt.Errorf("%s %v: %w", entity, id, target) }

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return wrap(err)
	case errors.Is(err, pgx.ErrNoRows):
		return wrap(domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return wrap(err)
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return wrap(domain.ErrAlreadyExists)
	case codeForeignKeyViolation:
		// flashcards.generation_id referencing a missing generation.
		return wrap(domain.ErrNotFound)
	case codeCheckViolation, codeNotNullViolation:
		detail := pgErr.ConstraintName
		if detail == "" {
			detail = pgErr.ColumnName
		}
		return fmt.Errorf("%s %v: %w: %s", entity, id, domain.ErrValidation, detail)
	case codeSerializationFailure, codeDeadlockDetected:
		return wrap(domain.ErrConflict)
	}
	return wrap(err)
}
