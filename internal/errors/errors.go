// Package errors provides the typed error taxonomy for the bonus grid engine.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeSchema indicates an invalid input-field schema (fatal at load)
	TypeSchema Type = "SCHEMA_ERROR"

	// TypeCatalog indicates a row/output catalog referencing an undeclared address (fatal at load)
	TypeCatalog Type = "CATALOG_ERROR"

	// TypeAddress indicates a requested address with no resolvable formula path (strict mode only)
	TypeAddress Type = "UNKNOWN_ADDRESS"

	// TypeStorage indicates a workbook persistence error
	TypeStorage Type = "STORAGE_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInput indicates an invalid request payload
	TypeInput Type = "INPUT_ERROR"

	// TypeExport indicates an export rendering error
	TypeExport Type = "EXPORT_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// Schemaf creates a formatted schema error
func Schemaf(format string, args ...interface{}) *Error {
	return Newf(TypeSchema, format, args...)
}

// Catalogf creates a formatted catalog error
func Catalogf(format string, args ...interface{}) *Error {
	return Newf(TypeCatalog, format, args...)
}

// UnknownAddress creates an unknown-address error for strict mode
func UnknownAddress(address string) *Error {
	return Newf(TypeAddress, "no formula path for address: %s", address)
}

// Storage creates a storage error
func Storage(message string, cause error) *Error {
	return Wrap(TypeStorage, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Export creates an export error
func Export(message string, cause error) *Error {
	return Wrap(TypeExport, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
