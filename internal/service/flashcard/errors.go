package flashcard

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/heartmarshall/flashgen-backend/internal/domain"
)

// Code classifies a flashcard failure for the HTTP layer.
type Code string

const (
	CodeValidationError Code = "VALIDATION_ERROR"
	CodeDatabaseError   Code = "DATABASE_ERROR"
	CodeNotFound        Code = "NOT_FOUND"
	CodeForbidden       Code = "FORBIDDEN"
)

// Error is returned by Service for every failure except a missing caller
// identity, which is reported as domain.ErrUnauthorized.
type Error struct {
	Code    Code
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("flashcard: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func validationFailed(err error) *Error {
	return &Error{Code: CodeValidationError, Status: http.StatusBadRequest, Message: "Validation failed", Err: err}
}

func notFound(msg string, err error) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: msg, Err: err}
}

func databaseError(msg string, err error) *Error {
	return &Error{Code: CodeDatabaseError, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// repoError turns a repository error into NOT_FOUND when the row is missing
// and DATABASE_ERROR otherwise.
func repoError(err error, notFoundMsg, dbMsg string) *Error {
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(notFoundMsg, err)
	}
	return databaseError(dbMsg, err)
}
