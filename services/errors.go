// File: /services/errors.go
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrScopeNotFound means a requested user, vehicle or group does not exist.
	ErrScopeNotFound = errors.New("scope not found")
	// ErrForbidden means the caller may not view or change the requested scope.
	ErrForbidden = errors.New("access denied")
	// ErrNotFound is returned for missing non-scope records such as expenses.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique value is already taken.
	ErrConflict = errors.New("already exists")
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

func scopeNotFound(kind string, ids ...string) error {
	return fmt.Errorf("%w: %s %s", ErrScopeNotFound, kind, strings.Join(ids, ", "))
}
