package domain

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("not authorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPersistence        = errors.New("persistence error")
)

type ErrorKind string

const (
	KindValidation     ErrorKind = "validation_error"
	KindNotFound       ErrorKind = "not_found_error"
	KindConflict       ErrorKind = "conflict_error"
	KindAuthorization  ErrorKind = "authorization_error"
	KindAuthentication ErrorKind = "authentication_error"
	KindPersistence    ErrorKind = "persistence_error"
)

// KindOf classifies err. Anything not wrapping a known sentinel is a
// persistence failure.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrForbidden):
		return KindAuthorization
	case errors.Is(err, ErrInvalidCredentials):
		return KindAuthentication
	default:
		return KindPersistence
	}
}
