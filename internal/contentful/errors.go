package contentful

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotConfigured      = errors.New("contentful: client is not configured")
	ErrManagementDisabled = errors.New("contentful: management token is not configured")
)

// APIError is a non 2xx response from Contentful.
type APIError struct {
	StatusCode int
	ID         string
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("contentful: %d", e.StatusCode)
	if e.ID != "" {
		msg += " " + e.ID
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.RequestID != "" {
		msg += " (request " + e.RequestID + ")"
	}
	return msg
}

// NotFound reports a 404 response.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err is a Contentful 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

type errorBody struct {
	Sys       Sys    `json:"sys"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}
