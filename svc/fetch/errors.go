package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingAPIKey   = errors.New("fetch: weather API key is not set")
	ErrUnauthorized    = errors.New("fetch: upstream rejected credentials")
	ErrRequestFailed   = errors.New("fetch: request failed")
	ErrInvalidResponse = errors.New("fetch: invalid response body")
)

// HTTPError is returned for any non-2xx upstream response.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("fetch: %s returned %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch: %s returned %d: %s", e.URL, e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match ErrUnauthorized on 401 responses.
func (e *HTTPError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}
