package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrBlogNotFound is returned when a blog is absent or not owned by the
	// caller. Ownership misses deliberately look identical to absent records.
	ErrBlogNotFound = errors.New("Blog not found")
	// ErrUserNotFound is returned when a user lookup fails.
	ErrUserNotFound = errors.New("User not found")
	// ErrEmailTaken is returned when registering an already registered email.
	ErrEmailTaken = errors.New("User already exists")
	// ErrInvalidCredentials is returned for any login failure. The message is
	// the same whether the email is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrInvalidStatus is returned when a write carries a status other than
	// draft or published.
	ErrInvalidStatus = errors.New("Invalid status")
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error body returned to clients.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is
// downgraded to a generic 500 so store internals never leak to clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrBlogNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error")
	}
}
