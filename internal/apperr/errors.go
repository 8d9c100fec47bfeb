// Package apperr defines the coded errors returned by the event services.
// Every error here is local and recoverable and is reported to the control
// that triggered it.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

// Code identifies the kind of failure.
type Code string

const (
	CodeValidation     Code = "VALIDATION"
	CodeConflict       Code = "CONFLICT"
	CodeAuthFailure    Code = "AUTH_FAILURE"
	CodeAuthorization  Code = "AUTHORIZATION"
	CodeDeadlinePassed Code = "DEADLINE_PASSED"
	CodeNotFound       Code = "NOT_FOUND"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrValidation     = &Error{Code: CodeValidation}
	ErrConflict       = &Error{Code: CodeConflict}
	ErrAuthFailure    = &Error{Code: CodeAuthFailure}
	ErrAuthorization  = &Error{Code: CodeAuthorization}
	ErrDeadlinePassed = &Error{Code: CodeDeadlinePassed}
	ErrNotFound       = &Error{Code: CodeNotFound}
)

// Error is a domain error. Fields maps a form field to its user-facing
// message and is only set for validation errors.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	if e.Message == "" {
		return strings.Join(parts, "; ")
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Validation builds a validation error for a single field.
func Validation(field, message string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "dados inválidos",
		Fields:  map[string]string{field: message},
	}
}

// ValidationFields builds a validation error covering several fields.
func ValidationFields(fields map[string]string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "dados inválidos",
		Fields:  fields,
	}
}

func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

func AuthFailure(message string) *Error {
	return &Error{Code: CodeAuthFailure, Message: message}
}

func Authorization(message string) *Error {
	return &Error{Code: CodeAuthorization, Message: message}
}

func DeadlinePassed(message string) *Error {
	return &Error{Code: CodeDeadlinePassed, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// FieldMessages returns the per-field messages of a validation error, or
// nil when err is not one.
func FieldMessages(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Code == CodeValidation {
		return appErr.Fields
	}
	return nil
}
