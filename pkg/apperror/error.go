package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status so callers can
// branch on the failure cause rather than the transport code.
type Kind string

const (
	KindInvalidCredentials Kind = "invalid_credentials"
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindValidation         Kind = "validation"
	KindConflict           Kind = "conflict"
	KindStorage            Kind = "storage"
	KindDatabase           Kind = "database"
	KindInternal           Kind = "internal"
)

// InvalidCredentialsMessage is shared by every login failure path so that an
// unknown email and a wrong password are indistinguishable to the client.
const InvalidCredentialsMessage = "Invalid email or password"

type AppError struct {
	Code    int         `json:"code"`
	Kind    Kind        `json:"kind"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForStatus(code),
		Message: message,
		Err:     err,
	}
}

func newKind(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return newKind(http.StatusBadRequest, KindValidation, message, nil)
}

// Validation carries per-field messages in Details.
func Validation(message string, details interface{}) *AppError {
	e := newKind(http.StatusBadRequest, KindValidation, message, nil)
	e.Details = details
	return e
}

func InvalidCredentials() *AppError {
	return newKind(http.StatusUnauthorized, KindInvalidCredentials, InvalidCredentialsMessage, nil)
}

func Unauthorized(message string) *AppError {
	return newKind(http.StatusUnauthorized, KindUnauthenticated, message, nil)
}

func Forbidden(message string) *AppError {
	return newKind(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return newKind(http.StatusNotFound, KindNotFound, message, nil)
}

// Conflict reports a uniqueness violation. The public API has always answered
// duplicates with 400.
func Conflict(message string) *AppError {
	return newKind(http.StatusBadRequest, KindConflict, message, nil)
}

func Storage(message string, err error) *AppError {
	return newKind(http.StatusBadGateway, KindStorage, message, err)
}

func Database(err error) *AppError {
	return newKind(http.StatusInternalServerError, KindDatabase, "Database error", err)
}

func Internal(err error) *AppError {
	return newKind(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// KindOf returns the Kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries an AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadGateway:
		return KindStorage
	default:
		return KindInternal
	}
}
