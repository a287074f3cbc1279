// Package config loads, validates and writes the labelord configuration file
// and defines the fatal configuration errors that map to process exit codes.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Process exit codes for fatal configuration problems
const (
	ExitCodeError          = 1
	ExitCodeNoToken        = 3
	ExitCodeNoRepositories = 7
)

var (
	// ErrNoToken is returned when no GitHub token could be resolved
	ErrNoToken = errors.New("no GitHub token has been provided")

	// ErrNoRepositories is returned when no repository was selected
	ErrNoRepositories = errors.New("no repositories specification has been found")
)

// ConfigurationError is fatal and aborts the run before any reconciliation
type ConfigurationError struct {
	Code int
	Err  error
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError wraps err with the exit code the process should use
func NewConfigurationError(code int, err error) *ConfigurationError {
	return &ConfigurationError{Code: code, Err: err}
}

// ExitCode returns the process exit code for err: the code of a wrapped
// ConfigurationError, 0 for nil and ExitCodeError otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Code
	}
	return ExitCodeError
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation error for field '%s' (value: %s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	if len(e) == 1 {
		return e[0].Error()
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed with %d errors: %s", len(e), strings.Join(messages, "; "))
}

// Add adds a validation error to the collection
func (e *ValidationErrors) Add(field, value, message string) {
	*e = append(*e, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}
