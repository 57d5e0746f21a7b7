package httperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error into the response category handlers
// map it to.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindDomain
	KindConflict
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func NewValidation(message string) *AppError { return New(KindValidation, message) }
func NewAuth(message string) *AppError       { return New(KindAuth, message) }
func NewForbidden(message string) *AppError  { return New(KindForbidden, message) }
func NewNotFound(message string) *AppError   { return New(KindNotFound, message) }
func NewDomain(message string) *AppError     { return New(KindDomain, message) }
func NewConflict(message string) *AppError   { return New(KindConflict, message) }

// Wrap marks err as unexpected while keeping it in the chain for logging.
func Wrap(err error, message string) *AppError {
	return &AppError{Kind: KindUnexpected, Message: message, Err: err}
}

// StatusCode maps an error to its HTTP status. Unknown errors are treated as
// unexpected.
func StatusCode(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation, KindDomain:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
