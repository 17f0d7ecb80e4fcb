// Package apperror defines the application error taxonomy and its mapping to
// HTTP status codes, so handlers can translate service errors into responses
// without inspecting driver-level errors themselves.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType int

const (
	// InternalError is the catch-all for unexpected failures.
	InternalError ErrorType = iota
	// DatabaseError represents an error originating from the database.
	DatabaseError
	// ValidationError represents a rejected form submission.
	ValidationError
	// AuthError represents invalid credentials on login.
	AuthError
	// ForbiddenError represents an identity without the required privilege.
	ForbiddenError
	// NotFoundError represents a missing resource or dangling identity.
	NotFoundError
	// ConflictError represents a uniqueness conflict, e.g. a duplicate email.
	ConflictError
	// DeliveryError represents a failed outbound notification.
	DeliveryError
)

// AppError carries a user-facing message, an error category and an optional
// wrapped cause for logs.
type AppError struct {
	Type    ErrorType
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

// StatusCode maps the error category to an HTTP status code.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError:
		return http.StatusUnprocessableEntity
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ConflictError:
		return http.StatusConflict
	case DeliveryError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewDatabaseError(message string, err error) *AppError {
	return New(DatabaseError, message, err)
}

func NewValidationError(message string, err error) *AppError {
	return New(ValidationError, message, err)
}

func NewAuthError(message string, err error) *AppError {
	return New(AuthError, message, err)
}

func NewForbiddenError(message string, err error) *AppError {
	return New(ForbiddenError, message, err)
}

func NewNotFoundError(message string, err error) *AppError {
	return New(NotFoundError, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return New(ConflictError, message, err)
}

func NewDeliveryError(message string, err error) *AppError {
	return New(DeliveryError, message, err)
}

// IsType reports whether err is an *AppError of the given category anywhere
// in its chain.
func IsType(err error, errType ErrorType) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Type == errType
	}
	return false
}

func IsConflict(err error) bool  { return IsType(err, ConflictError) }
func IsAuth(err error) bool      { return IsType(err, AuthError) }
func IsNotFound(err error) bool  { return IsType(err, NotFoundError) }
func IsForbidden(err error) bool { return IsType(err, ForbiddenError) }
func IsDelivery(err error) bool  { return IsType(err, DeliveryError) }

// Message returns the user-facing message of an AppError, or a generic
// message for unrecognized errors.
func Message(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "An internal error occurred"
}

// StatusCode returns the HTTP status for any error, defaulting to 500.
func StatusCode(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.StatusCode()
	}
	return http.StatusInternalServerError
}
