// Package errors provides typed errors for the DTV reply service client.
//
// Every failure of a chat exchange falls in one of four kinds:
// configuration (no usable backend URL), transport (request not sent or
// no response), protocol (non-success HTTP status) and payload (response
// body is not the expected JSON).
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common cases
var (
	ErrMissingBackendURL = errors.New("backend URL is not defined")
	ErrInvalidBackendURL = errors.New("backend URL is invalid")
	ErrInvalidResponse   = errors.New("invalid response format")
	ErrClientClosed      = errors.New("client is closed")
)

// ConfigError is raised before any request is attempted
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Message == "" {
		if e.Err != nil {
			return fmt.Sprintf("configuration error: %v", e.Err)
		}
		return "configuration error"
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is allows comparison with other ConfigErrors
func (e *ConfigError) Is(target error) bool {
	_, ok := target.(*ConfigError)
	return ok
}

// NewConfigError creates a ConfigError wrapping a sentinel
func NewConfigError(message string, err error) *ConfigError {
	return &ConfigError{Message: message, Err: err}
}

// NewMissingBackendURLError is returned when no backend URL is configured
func NewMissingBackendURLError() *ConfigError {
	return NewConfigError(
		"backend URL is not defined. Set DTV_BACKEND_URL or run 'dtvchat config'",
		ErrMissingBackendURL,
	)
}

// NetworkError represents a transport-level failure
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s at %s: %v", e.Operation, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a NetworkError without endpoint information
func NewNetworkError(operation string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Err: err}
}

// NewNetworkErrorWithEndpoint creates a NetworkError for a specific endpoint
func NewNetworkErrorWithEndpoint(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// APIError represents a response with a non-success status
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	if e.Endpoint != "" {
		msg += " at " + e.Endpoint
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewAPIErrorWithBody creates an APIError that keeps the raw response body
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
		Body:       body,
	}
}

// ParseError represents a response body that is not the expected JSON
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}

// IsNetworkError reports whether err is a transport error
func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

// IsAPIError reports whether err is a protocol error
func IsAPIError(err error) bool {
	var e *APIError
	return errors.As(err, &e)
}

// IsParseError reports whether err is a payload error
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// IsTimeoutError reports whether err was caused by a deadline or a
// transport timeout
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Path
	}
	return ""
}

// Kind returns a short name for the error category, used in logs
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsConfigError(err):
		return "config"
	case IsNetworkError(err):
		return "transport"
	case IsAPIError(err):
		return "protocol"
	case IsParseError(err):
		return "payload"
	default:
		return "unknown"
	}
}
