package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/snapshare/cli/pkg/api"
	"github.com/snapshare/cli/pkg/session"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Network errors
	ErrorTypeNetwork ErrorType = "network"
	ErrorTypeTimeout ErrorType = "timeout"

	// Authentication errors
	ErrorTypeAuth           ErrorType = "auth"
	ErrorTypeForbidden      ErrorType = "forbidden"
	ErrorTypeSessionExpired ErrorType = "session_expired"

	// Validation errors
	ErrorTypeValidation ErrorType = "validation"

	// Server errors
	ErrorTypeServer   ErrorType = "server"
	ErrorTypeNotFound ErrorType = "not_found"

	ErrorTypeUnknown ErrorType = "unknown"
)

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string) *CLIError {
	err := NewCLIError(ErrorTypeNetwork, message, nil)
	err.Suggestion = "Check your internet connection and that api.base_url points at the server."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError() *CLIError {
	err := NewCLIError(ErrorTypeTimeout, "Request timed out", nil)
	err.Suggestion = "The server is taking too long to respond. Try again in a moment."
	return err
}

// AuthError creates an authentication error
func AuthError(message string) *CLIError {
	err := NewCLIError(ErrorTypeAuth, message, nil)
	err.Suggestion = "Try logging in again with 'snapshare auth login'"
	return err
}

// SessionExpiredError creates a session expired error
func SessionExpiredError() *CLIError {
	err := NewCLIError(ErrorTypeSessionExpired, "Your session has expired", nil)
	err.Suggestion = "Run 'snapshare auth login' with a fresh token."
	return err
}

// ForbiddenError creates a forbidden error
func ForbiddenError() *CLIError {
	err := NewCLIError(ErrorTypeForbidden, "Access denied", nil)
	err.Suggestion = "You can only change your own posts."
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *CLIError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewCLIError(ErrorTypeValidation, message, nil)
}

// ServerError creates a server error
func ServerError() *CLIError {
	err := NewCLIError(ErrorTypeServer, "Server error", nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *CLIError {
	return NewCLIError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
}

// CategorizeError converts a standard error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var result *CLIError
	var apiErr *api.APIError
	var netErr net.Error

	switch {
	case errors.Is(err, session.ErrExpired):
		result = SessionExpiredError()
	case errors.Is(err, session.ErrNoSession):
		result = AuthError("You are not logged in")
	case errors.As(err, &apiErr):
		result = categorizeStatus(apiErr)
	case errors.Is(err, context.DeadlineExceeded):
		result = TimeoutError()
	case errors.As(err, &netErr) && netErr.Timeout():
		result = TimeoutError()
	case strings.Contains(err.Error(), "connection refused"):
		result = NetworkError("Could not connect to server. Make sure it's running.")
	case errors.As(err, &netErr):
		result = NetworkError(err.Error())
	default:
		return NewCLIError(ErrorTypeUnknown, err.Error(), err)
	}

	result.Cause = err
	return result
}

func categorizeStatus(apiErr *api.APIError) *CLIError {
	var result *CLIError
	switch {
	case apiErr.StatusCode == http.StatusUnauthorized:
		result = AuthError("Invalid or expired token")
	case apiErr.StatusCode == http.StatusForbidden:
		result = ForbiddenError()
	case apiErr.StatusCode == http.StatusNotFound:
		result = NotFoundError("Resource", apiErr.Message)
	case apiErr.StatusCode == http.StatusBadRequest:
		result = NewCLIError(ErrorTypeValidation, apiErr.Message, nil)
	case apiErr.StatusCode >= 500:
		result = ServerError()
	default:
		result = NewCLIError(ErrorTypeUnknown, apiErr.Message, nil)
	}
	result.StatusCode = apiErr.StatusCode
	return result
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Message)
	sb.WriteString("\n")

	if cliErr.HasSuggestion() {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}
