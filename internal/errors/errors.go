// Package errors provides the typed errors returned across the quote engine.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Type identifies the category of error
type Type string

const (
	// TypeValidation indicates that quote parameters violated one or more rules
	TypeValidation Type = "VALIDATION_ERROR"

	// TypeInput indicates malformed caller input outside the engine rules
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing indicates a request file could not be decoded
	TypeParsing Type = "PARSING_ERROR"

	// TypePricing indicates a cost stage could not be evaluated
	TypePricing Type = "PRICING_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"

	// TypeNotSupported indicates an unsupported operation
	TypeNotSupported Type = "NOT_SUPPORTED"
)

// ViolationSeparator joins individual validation messages.
const ViolationSeparator = "; "

const violationsKey = "violations"

// Error is a domain error with a category and optional context.
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

// Is reports whether the error has the given category.
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext attaches a key/value pair and returns the same error.
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{Type: errType, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps a cause with a category and message.
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// IsType reports whether err, or anything it wraps, is an *Error of type t.
func IsType(err error, t Type) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// Validation aggregates every violation message into one failure.
// The message is the violations joined with ViolationSeparator, in order.
func Validation(violations []string) *Error {
	list := make([]string, len(violations))
	copy(list, violations)
	return New(TypeValidation, strings.Join(list, ViolationSeparator)).
		WithContext(violationsKey, list)
}

// Violations returns the individual messages of a validation failure,
// or nil when err is not one.
func Violations(err error) []string {
	var e *Error
	if !stderrors.As(err, &e) || e.Type != TypeValidation {
		return nil
	}
	list, _ := e.Context[violationsKey].([]string)
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// Pricing creates a pricing error
func Pricing(message string, cause error) *Error {
	return Wrap(TypePricing, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// NotSupported creates a not supported error
func NotSupported(operation string) *Error {
	return Newf(TypeNotSupported, "operation not supported: %s", operation)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
