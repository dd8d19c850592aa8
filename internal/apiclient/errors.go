package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is returned for every response outside the 2xx range.
type Error struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Unauthorized reports whether the server rejected the session.
func (e *Error) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

// NotFound reports a 404 response.
func (e *Error) NotFound() bool { return e.Status == http.StatusNotFound }

// StatusOf returns the HTTP status carried by err, or 0 for transport
// failures and non-API errors.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOr returns the server-supplied message of err, or fallback when the
// server sent none or the failure happened below HTTP.
func MessageOr(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// serverMessage extracts {"error": "..."} or {"message": "..."} from a
// response body.
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return strings.TrimSpace(payload.Error)
	}
	return strings.TrimSpace(payload.Message)
}

// Result is a response body the dashboard hands back to its caller without
// interpreting it (acknowledgements, summaries, calculator output).
type Result map[string]any
