package errors

import (
	"errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryToolbox Category = "toolbox"
	CategoryView    Category = "view"
	CategoryRender  Category = "render"
	CategoryLoader  Category = "loader"
)

// Error is a structured error with a stable code, a category and an
// optional suggestion for the user.
type Error struct {
	// Code is a unique error identifier (e.g., "V001").
	Code string

	// Category is the error type (config, toolbox, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same error code.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// New creates an error from a registered code. The arguments, if any, are
// formatted into the registered message.
func New(code string, args ...any) *Error {
	tmpl, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "unknown error"}
	}
	msg := tmpl.Message
	if len(args) > 0 {
		msg = fmt.Sprintf(tmpl.Message, args...)
	}
	return &Error{
		Code:       code,
		Category:   tmpl.Category,
		Message:    msg,
		Detail:     tmpl.Detail,
		Suggestion: tmpl.Suggestion,
	}
}

// Wrap creates an error from a registered code with an underlying cause.
func Wrap(code string, err error, args ...any) *Error {
	e := New(code, args...)
	e.Wrapped = err
	return e
}
