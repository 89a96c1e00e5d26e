package fetcher

import (
	"errors"
	"fmt"
)

// Transient fetch errors. Both are retried with backoff.
var (
	// ErrTimeout indicates the request exceeded the fetch timeout.
	ErrTimeout = errors.New("fetch timeout")
	// ErrConnection indicates the target could not be reached.
	ErrConnection = errors.New("connection failed")
)

// HTTPError is returned when the target responds with a non-success
// status. 429 and 5xx responses are retried; other 4xx fail immediately.
type HTTPError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http status %d", e.StatusCode)
}

// Transient reports whether the status warrants a retry.
func (e *HTTPError) Transient() bool {
	return e.StatusCode == statusTooManyReqs || e.StatusCode >= statusServerErrLow
}
