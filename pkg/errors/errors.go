// Package errors provides custom error types for the sheetsync system.
// These errors enable programmatic error checking at the reconciler's
// per-source boundaries and keep remote API failures typed rather than raw.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the sheetsync system
var (
	// ErrNotFound indicates that a spreadsheet or sheet was not found
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied indicates that the caller lacks permission on a spreadsheet
	ErrAccessDenied = errors.New("access denied")

	// ErrTransient indicates a temporary network or service failure worth retrying
	ErrTransient = errors.New("transient failure")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyTable indicates that a sheet returned no values at all
	ErrEmptyTable = errors.New("empty table")

	// ErrCredentialsRequired indicates that API credentials are required but not provided
	ErrCredentialsRequired = errors.New("credentials required")
)

// NotFoundError represents an error when a spreadsheet or sheet is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// AccessError represents a permission failure against a source spreadsheet
type AccessError struct {
	SpreadsheetID string
	Message       string
	Err           error
}

// Error implements the error interface
func (e *AccessError) Error() string {
	if e.SpreadsheetID != "" {
		return fmt.Sprintf("access denied to spreadsheet %s: %s", e.SpreadsheetID, e.Message)
	}
	return fmt.Sprintf("access denied: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AccessError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AccessError) Is(target error) bool {
	return target == ErrAccessDenied
}

// TransientError represents a temporary failure from the remote API
type TransientError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *TransientError) Error() string {
	return fmt.Sprintf("transient failure during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *TransientError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransientError) Is(target error) bool {
	return target == ErrTransient
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error, such as a source table
// declaring fewer columns than the row filter requires
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// APIError represents an error from the remote tabular API
type APIError struct {
	SpreadsheetID string
	StatusCode    int
	Message       string
	Err           error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error for spreadsheet %s (status %d): %s", e.SpreadsheetID, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error for spreadsheet %s: %s", e.SpreadsheetID, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 403:
		return target == ErrAccessDenied
	case e.StatusCode == 404:
		return target == ErrNotFound
	case e.StatusCode == 429 || e.StatusCode >= 500:
		return target == ErrTransient
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(spreadsheetID string, statusCode int, message string) *APIError {
	return &APIError{
		SpreadsheetID: spreadsheetID,
		StatusCode:    statusCode,
		Message:       message,
	}
}

// ParseError represents an error when parsing persisted data formats
type ParseError struct {
	Format  string // "json", "yaml", "csv"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations on the tracking store
// or export artifacts
type IOError struct {
	Operation string // "read", "write", "create", "delete"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// AuthenticationError represents an authentication failure against the remote API
type AuthenticationError struct {
	Method  string // "service_account", "api_key"
	Message string
	Err     error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrCredentialsRequired
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAccessDenied checks if an error is a permission error
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsTransient checks if an error is a temporary remote failure
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsEmptyTable checks if an error reports a sheet with no values
func IsEmptyTable(err error) bool {
	return errors.Is(err, ErrEmptyTable)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAPI wraps an error as an APIError
func WrapAPI(spreadsheetID string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		SpreadsheetID: spreadsheetID,
		StatusCode:    statusCode,
		Message:       err.Error(),
		Err:           err,
	}
}
