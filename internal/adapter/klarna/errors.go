package klarna

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for every failed Klarna call: transport failures,
// non-2xx responses and undecodable bodies.
type APIError struct {
	StatusCode    int
	Code          string
	Messages      []string
	CorrelationID string
	Err           error
}

// errorResponse mirrors Klarna error payload.
type errorResponse struct {
	ErrorCode     string   `json:"error_code"`
	ErrorMessages []string `json:"error_messages"`
	CorrelationID string   `json:"correlation_id"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("klarna api error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Code != "" {
		fmt.Fprintf(&b, ", code %s", e.Code)
	}
	if len(e.Messages) > 0 {
		fmt.Fprintf(&b, ", %s", strings.Join(e.Messages, "; "))
	}
	if e.CorrelationID != "" {
		fmt.Fprintf(&b, " (correlation id %s)", e.CorrelationID)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the resource is unknown or expired on Klarna side.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone || e.Code == "NOT_FOUND"
}

// IsAPIError reports whether err carries an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsNotFound reports whether err is an APIError for a missing or expired resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
