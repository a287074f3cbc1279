package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"

	"labelord/pkg/labels"
)

// ErrorType represents different categories of GitHub API errors
type ErrorType string

const (
	ErrorTypeAuth          ErrorType = "unauthorized"
	ErrorTypePermission    ErrorType = "permission"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeAlreadyExists ErrorType = "already_exists"
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeRateLimit     ErrorType = "rate_limit"
	ErrorTypeNetwork       ErrorType = "network"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// Error represents a classified failure of a single GitHub API call
type Error struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Cause      error     `json:"-"`
	Resource   string    `json:"resource,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s error for %s: %s", e.Type, e.Resource, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the specified type and message
func NewError(errorType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// IsErrorType reports whether err wraps an *Error of the given type
func IsErrorType(err error, errorType ErrorType) bool {
	var ghErr *Error
	return errors.As(err, &ghErr) && ghErr.Type == errorType
}

// WrapGitHubError classifies a go-github error into our structured error type
func WrapGitHubError(err error, resource string) *Error {
	if err == nil {
		return nil
	}

	// Already classified; copy so a shared error value is never mutated
	var ghErr *Error
	if errors.As(err, &ghErr) {
		wrapped := *ghErr
		if wrapped.Resource == "" {
			wrapped.Resource = resource
		}
		return &wrapped
	}

	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &Error{
			Type:       ErrorTypeRateLimit,
			Message:    fmt.Sprintf("rate limit exceeded, resets at %v", rateLimitErr.Rate.Reset.Time),
			Cause:      err,
			Resource:   resource,
			StatusCode: statusCode(rateLimitErr.Response),
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &Error{
			Type:       ErrorTypeRateLimit,
			Message:    abuseErr.Message,
			Cause:      err,
			Resource:   resource,
			StatusCode: statusCode(abuseErr.Response),
		}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		return parseGitHubAPIError(respErr, resource)
	}

	if isNetworkError(err) {
		return &Error{
			Type:     ErrorTypeNetwork,
			Message:  err.Error(),
			Cause:    err,
			Resource: resource,
		}
	}

	return &Error{
		Type:     ErrorTypeUnknown,
		Message:  err.Error(),
		Cause:    err,
		Resource: resource,
	}
}

// parseGitHubAPIError maps the HTTP status of an API error response to an
// ErrorType, keeping the message GitHub sent.
func parseGitHubAPIError(respErr *github.ErrorResponse, resource string) *Error {
	baseErr := &Error{
		Resource:   resource,
		Cause:      respErr,
		Message:    respErr.Message,
		StatusCode: statusCode(respErr.Response),
	}

	switch baseErr.StatusCode {
	case http.StatusUnauthorized:
		baseErr.Type = ErrorTypeAuth

	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(respErr.Message), "rate limit") {
			baseErr.Type = ErrorTypeRateLimit
		} else {
			baseErr.Type = ErrorTypePermission
		}

	case http.StatusNotFound:
		baseErr.Type = ErrorTypeNotFound

	case http.StatusConflict:
		baseErr.Type = ErrorTypeAlreadyExists

	case http.StatusUnprocessableEntity:
		baseErr.Type = ErrorTypeValidation

		var details []string
		for _, e := range respErr.Errors {
			if e.Code == "already_exists" {
				baseErr.Type = ErrorTypeAlreadyExists
			}
			switch {
			case e.Field != "" && e.Code != "":
				details = append(details, fmt.Sprintf("%s %s", e.Field, e.Code))
			case e.Message != "":
				details = append(details, e.Message)
			}
		}
		if len(details) > 0 {
			baseErr.Message = fmt.Sprintf("%s: %s", respErr.Message, strings.Join(details, "; "))
		}

	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		baseErr.Type = ErrorTypeNetwork

	default:
		baseErr.Type = ErrorTypeUnknown
	}

	if baseErr.Message == "" {
		baseErr.Message = http.StatusText(baseErr.StatusCode)
	}

	return baseErr
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

// isNetworkError checks if an error is a network-related error
func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no such host",
		"i/o timeout",
		"dial tcp",
		"eof",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// FetchError reports that the current labels of a repository could not be
// listed. No operation is attempted against that repository.
type FetchError struct {
	Repository string
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to list labels of %s: %v", e.Repository, e.Err)
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// OperationError reports a single failed create, update or delete call
type OperationError struct {
	Repository string
	Operation  labels.Operation
	Err        error
}

// Error implements the error interface
func (e *OperationError) Error() string {
	return fmt.Sprintf("%s on %s failed: %v", e.Operation, e.Repository, e.Err)
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	return e.Err
}

// PanicError is a panic raised while talking to the LabelStore, recovered so
// the remaining operations and repositories still run
type PanicError struct {
	Value any
}

// Error implements the error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("unexpected panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Detail returns the most specific message for err: the classified API error
// when one is wrapped, otherwise err itself.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	var ghErr *Error
	if errors.As(err, &ghErr) {
		return ghErr.Error()
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Err.Error()
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Err.Error()
	}
	return err.Error()
}
