// Package apperr defines the error taxonomy shared by services and handlers.
// Errors carry a sentinel kind (mapped to a machine-readable string and an
// HTTP status) and a short user-facing message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream failure")
	ErrUnauthorized = errors.New("unauthorized")
)

type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

// New builds an error of the given kind with a user-facing message.
func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind error, format string, args ...any) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, ErrValidation):
		return "validation"

	case errors.Is(err, ErrNotFound):
		return "not_found"

	case errors.Is(err, ErrConflict):
		return "conflict"

	case errors.Is(err, ErrUpstream):
		return "upstream"

	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"

	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrConflict):
		return http.StatusConflict

	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway

	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}
