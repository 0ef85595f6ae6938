package domain

import (
	"errors"
	"net/http"
)

// StatusError is a failure that carries the HTTP status and message the API
// should answer with. Details are merged into the JSON error body.
type StatusError struct {
	Code    int
	Message string
	Details map[string]any
}

// NewStatusError returns a StatusError with the given code and message.
func NewStatusError(code int, message string) *StatusError {
	return &StatusError{Code: code, Message: message}
}

func (e *StatusError) Error() string { return e.Message }

// Is matches another StatusError with the same code and message, so copies
// produced by With still satisfy errors.Is against the sentinels below.
func (e *StatusError) Is(target error) bool {
	var t *StatusError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

// With returns a copy of e carrying an extra diagnostic field.
func (e *StatusError) With(key string, value any) *StatusError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &StatusError{Code: e.Code, Message: e.Message, Details: details}
}

var (
	ErrUnauthorized    = NewStatusError(http.StatusUnauthorized, "unauthorized")
	ErrUnknownEndpoint = NewStatusError(http.StatusNotFound, "unknown endpoint")
	ErrUnknownUser     = NewStatusError(http.StatusNotFound, "unknown user")
	ErrUserExists      = NewStatusError(http.StatusConflict, "user already exists")
	ErrFranchiseExists = NewStatusError(http.StatusConflict, "franchise already exists")
)

// Token failures never reach a client as such; the auth middleware turns
// both into an anonymous request.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token revoked")
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

func Validation(message string) *StatusError {
	return NewStatusError(http.StatusBadRequest, message)
}

func Forbidden(message string) *StatusError {
	return NewStatusError(http.StatusForbidden, message)
}

func NotFound(message string) *StatusError {
	return NewStatusError(http.StatusNotFound, message)
}

// Upstream reports a failure of an external collaborator.
func Upstream(message string) *StatusError {
	return NewStatusError(http.StatusInternalServerError, message)
}
