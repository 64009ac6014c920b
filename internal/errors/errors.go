// Package errors provides custom error types for the chat client.
package errors

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Sentinel errors for common cases
var (
	ErrAuthFailed      = errors.New("authentication failed")
	ErrNoCredentials   = errors.New("no API key provided")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrNoContent       = errors.New("no content in response")
	ErrAborted         = errors.New("input aborted")
	ErrNoEditor        = errors.New("no editor could be launched")
)

// CredentialError is returned at startup when no API key could be found
// in the environment, an env file, or an interactive prompt.
type CredentialError struct {
	EnvVar string
}

func (e *CredentialError) Error() string {
	if e.EnvVar == "" {
		return ErrNoCredentials.Error()
	}
	return fmt.Sprintf("%s: set %s or enter a key when prompted", ErrNoCredentials, e.EnvVar)
}

// Is allows comparison with sentinel errors
func (e *CredentialError) Is(target error) bool {
	if target == ErrNoCredentials {
		return true
	}
	_, ok := target.(*CredentialError)
	return ok
}

// NewCredentialError creates a new CredentialError
func NewCredentialError(envVar string) *CredentialError {
	return &CredentialError{EnvVar: envVar}
}

// APIError represents an API request failure
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// Is matches ErrAuthFailed for 401 and 403 responses.
func (e *APIError) Is(target error) bool {
	if target == ErrAuthFailed {
		return e.StatusCode == 401 || e.StatusCode == 403
	}
	_, ok := target.(*APIError)
	return ok
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// StreamError wraps a failure that happened while streaming a completion.
type StreamError struct {
	Model string
	Err   error
}

func (e *StreamError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("stream failed: %v", e.Err)
	}
	return fmt.Sprintf("stream from %s failed: %v", e.Model, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// NewStreamError creates a new StreamError
func NewStreamError(model string, err error) *StreamError {
	return &StreamError{Model: model, Err: err}
}

// ParseError represents a chat file parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// EditorError is returned when neither the configured editor nor any
// fallback could be started.
type EditorError struct {
	Path  string
	Tried []string
}

func (e *EditorError) Error() string {
	return fmt.Sprintf("could not open editor for %s (tried %s)", e.Path, strings.Join(e.Tried, ", "))
}

// Is allows comparison with sentinel errors
func (e *EditorError) Is(target error) bool {
	if target == ErrNoEditor {
		return true
	}
	_, ok := target.(*EditorError)
	return ok
}

// NewEditorError creates a new EditorError
func NewEditorError(path string, tried []string) *EditorError {
	return &EditorError{Path: path, Tried: tried}
}

// GetHTTPStatus returns the HTTP status carried by err, or 0.
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or "".
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	return ""
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}

// IsRateLimitError reports whether err is a 429 response.
func IsRateLimitError(err error) bool {
	return GetHTTPStatus(err) == 429
}

// IsNetworkError reports whether err was caused by the network layer.
func IsNetworkError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsTimeoutError reports whether err is a network timeout.
func IsTimeoutError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
