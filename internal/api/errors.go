package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Application error codes returned by the backend in the error envelope.
const (
	CodeInvalidAccessTokenFormat  = 101
	CodeInvalidRefreshTokenFormat = 102
	CodeInvalidSignInInfo         = 103
	CodeWrongCredential           = 110
	CodeWrongPassword             = 111
	CodeSignInRequired            = 112
	CodeExpiredAccessToken        = 120
	CodeExpiredRefreshToken       = 121
	CodeInvalidRequest            = 200
	CodeUserNotFound              = 301
	CodeStoreNotFound             = 302
	CodeUsernameDuplicate         = 401
	CodeInternalServerError       = 900
)

// Error is a structured non-2xx response from the backend.
type Error struct {
	Status  int
	Code    int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d (code %d)", e.Status, e.Code)
	}
	return fmt.Sprintf("api: %s (status %d, code %d)", e.Message, e.Status, e.Code)
}

// HasCode reports whether err is an API error carrying the given
// application code.
func HasCode(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// IsUnauthorized reports an HTTP 401 response.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsForbidden reports an HTTP 403 response.
func IsForbidden(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden
}

// IsNotFound reports an HTTP 404 response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsConflict reports an HTTP 409 response, e.g. a duplicate username on
// sign-up.
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}
