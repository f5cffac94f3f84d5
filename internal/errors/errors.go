package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline failures. Every error that escapes a
// pipeline stage carries exactly one type.
type ErrorType string

const (
	ErrTypeNotFound   ErrorType = "NOT_FOUND"  // input file missing
	ErrTypeParsing    ErrorType = "PARSING"    // malformed row or cell
	ErrTypeSchema     ErrorType = "SCHEMA"     // referenced column absent
	ErrTypeIO         ErrorType = "IO"         // cannot write an output artifact
	ErrTypeConfig     ErrorType = "CONFIG"     // invalid configuration
	ErrTypeValidation ErrorType = "VALIDATION" // invalid chart configuration
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds diagnostic context (file path, column name, row number)
// to the error and returns it for chaining.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err (or anything it wraps) is an AppError of the
// given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper constructors for the pipeline error taxonomy

// NewNotFoundError creates an error for a missing input file
func NewNotFoundError(path string, cause error) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("input file not found: %s", path), cause).
		WithContext("path", path)
}

// NewParsingError creates an error for a malformed input row
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewSchemaError creates an error for a reference to a column that is not
// part of the loaded table
func NewSchemaError(column string) *AppError {
	return NewAppError(ErrTypeSchema, fmt.Sprintf("column %q not in table schema", column), nil).
		WithContext("column", column)
}

// NewIOError creates an error for a failed artifact write
func NewIOError(message string, cause error) *AppError {
	return NewAppError(ErrTypeIO, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewValidationError creates a chart configuration validation error
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}
