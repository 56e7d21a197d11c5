package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrConnection is returned when the database is unreachable after the
	// single reconnect attempt.
	ErrConnection = errors.New("database connection failed")
	// ErrNotFound is returned when an entity id has no matching row.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidCredentials is returned on any failed login without
	// revealing whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrPasswordMismatch is returned when a new password and its
	// confirmation differ, or the current password does not verify.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrEmptySelection is returned when a bulk operation receives no ids.
	ErrEmptySelection = errors.New("no clients selected")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation creates a ValidationError with the given message.
func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the standard success body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HTTPStatus maps a domain error to the status code it should surface as.
func HTTPStatus(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrSelfDelete),
		errors.Is(err, ErrEmptySelection):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the error text safe to expose to the caller.
// Internal failures collapse to a generic message.
func UserMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
