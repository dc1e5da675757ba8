package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindStorage      ErrorKind = "storage"
	KindSeedFetch    ErrorKind = "seed_fetch"
	KindUnauthorized ErrorKind = "unauthorized"
)

// AppError is an error that is safe to show to a caller. Message is the
// caller-facing text; Err holds the internal cause and is only logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationError(format string, args ...any) error {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func StorageError(err error, message string) error {
	return &AppError{Kind: KindStorage, Message: message, Err: err}
}

func SeedFetchError(err error, message string) error {
	return &AppError{Kind: KindSeedFetch, Message: message, Err: err}
}

func UnauthorizedError(message string) error {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

// KindOf returns the kind of the first AppError in err's chain, or "" when
// there is none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

func statusForKind(kind ErrorKind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindSeedFetch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
