package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError is a non-2xx backend response.
type HTTPError struct {
	Endpoint   string
	StatusCode int
	// Message is the backend-supplied "message" (or "error") field, if any.
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http %d", e.StatusCode)
}

func newHTTPError(endpoint string, status int, body []byte) *HTTPError {
	e := &HTTPError{Endpoint: endpoint, StatusCode: status, Body: body}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Message = strings.TrimSpace(payload.Message)
		if e.Message == "" {
			e.Message = strings.TrimSpace(payload.Error)
		}
	}
	return e
}

// StatusOf returns the HTTP status of a backend error, or 0.
func StatusOf(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// MessageOf returns the backend-supplied message of err, or "".
func MessageOf(err error) string {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Message
	}
	return ""
}

func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }
