package httpx

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is the transport error surfaced when a request fails or
// exhausts its retries; it carries the last observed status code.
type StatusError struct {
	Status int
	URL    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// IsAuthStatus reports whether err is a credential rejection.
func IsAuthStatus(err error) bool {
	return IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusForbidden)
}
