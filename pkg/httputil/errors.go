package httputil

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is wrapped by [StatusError] for 404 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures (DNS, connection, timeout).
	ErrNetwork = errors.New("network error")

	// ErrStatus is wrapped by [StatusError] for non-2xx responses other than 404.
	ErrStatus = errors.New("unexpected status")
)

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 4 << 10

// StatusError describes a response whose status was not 2xx.
// Body holds the (possibly truncated) raw response body so callers can
// inspect the server's own error payload.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap lets errors.Is match [ErrNotFound] or [ErrStatus].
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrStatus
}

// StatusCode extracts the HTTP status from err, or 0 if err carries none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
