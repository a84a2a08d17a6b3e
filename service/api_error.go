package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrBadParameter means that the request does not match the API contract (body shape, undecodable token).
	ErrBadParameter = "bad_parameter"
	// ErrUnauthorized means that no valid session token accompanied the request.
	ErrUnauthorized = "unauthorized"
	// ErrNotFound means that no route serves the requested path or method.
	ErrNotFound = "not_found"
)

// APIError is the error envelope returned by the HTTP API.
type APIError struct {
	// Code is a machine-readable code.
	Code string `json:"code"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is the wrapped cause; it is logged but never shown to API consumers.
	Inner error `json:"-"`
}

func NewAPIError(code string, message string, inner error) *APIError {
	return &APIError{Code: code, Message: message, Inner: inner}
}

// NewBadParameterError keeps an existing APIError found in inner's chain instead of re-wrapping it.
func NewBadParameterError(message string, inner error) *APIError {
	if e := ToAPIError(inner); e != nil {
		return e
	}
	return NewAPIError(ErrBadParameter, message, inner)
}

func NewUnauthorizedError(message string, inner error) *APIError {
	if e := ToAPIError(inner); e != nil {
		return e
	}
	return NewAPIError(ErrUnauthorized, message, inner)
}

func NewInternalServerError(message string, inner error) *APIError {
	if e := ToAPIError(inner); e != nil {
		return e
	}
	return NewAPIError(ErrInternalServerError, message, inner)
}

func (e APIError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

func (e APIError) Unwrap() error {
	return e.Inner
}

// ToAPIError returns the first *APIError in err's chain, or nil.
func ToAPIError(err error) *APIError {
	var e *APIError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsAPIError reports whether err carries an APIError with the given code.
func IsAPIError(err error, code string) bool {
	e := ToAPIError(err)
	return e != nil && e.Code == code
}
