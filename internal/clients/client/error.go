package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned by SendRequest for responses outside of the 2xx range
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	if e.StatusCode == http.StatusTooManyRequests {
		return fmt.Sprintf("%s %s: rate limit exceeded: %s", e.Method, e.Path, e.Body)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// StatusCode returns the http status carried by err or 0 when err isn't an *Error
func StatusCode(err error) int {
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}
	return 0
}

func IsStatus(err error, code int) bool {
	return StatusCode(err) == code
}

// IsRetryable reports transport failures, rate limiting and server side errors
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	code := StatusCode(err)
	return code == 0 || code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
