/*
Package errs provides custom error types and application-level error code constants.

This file defines the CustomError struct, which implements the standard Go error interface
and includes a business code, an error kind, a user-friendly message, and an HTTP status code
for unified error reporting.
*/
package errs

import (
	"errors"
	"fmt"
	"net/http"

	"duochat/internal/pkg/logx"
)

// Kind classifies an error into the taxonomy shared by every public operation.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindUpload
	KindConfiguration
)

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindConflict:
		return "ConflictError"
	case KindAuthentication:
		return "AuthenticationError"
	case KindUpload:
		return "UploadError"
	case KindConfiguration:
		return "ConfigurationError"
	default:
		return "InternalError"
	}
}

// Status returns the default HTTP status code for errors of this kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict, KindUpload:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// CustomError is the custom error structure used throughout the application.
// It wraps the Go error interface, adding a business code and HTTP status code.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Kind is the taxonomy class of the error.
	Kind Kind

	// Message is the user-friendly error description.
	Message string

	// Status is the standard HTTP status code corresponding to this error.
	Status int

	// Diagnostic carries operator-facing detail (e.g. a media host's raw message).
	// It is logged, never sent to clients.
	Diagnostic string

	cause error
}

// Error implements the standard Go error interface. It returns a formatted
// error string containing the error code, HTTP status, and message.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *CustomError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a CustomError with the same code.
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if errors.As(target, &t) {
		return t.Code == e.Code
	}
	return false
}

// WithDiagnostic returns a copy of the error carrying operator-facing detail.
func (e *CustomError) WithDiagnostic(diagnostic string) *CustomError {
	c := *e
	c.Diagnostic = diagnostic
	return &c
}

// WithCause returns a copy of the error wrapping the underlying cause.
func (e *CustomError) WithCause(err error) *CustomError {
	c := *e
	c.cause = err
	return &c
}

// NewError constructs and returns a new *CustomError instance based on a predefined error code.
// If an unknown code is provided, it defaults to returning ErrUnknown.
// When the code is ErrUnknown and the first detail is an error, it is logged and kept as the cause.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with an unknown code in errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		templateErr = errorMap[ErrUnknown]
		code = ErrUnknown
	}

	customErr := templateErr

	if customErr.Status == 0 {
		customErr.Status = customErr.Kind.Status()
	}

	if code == ErrUnknown && len(details) > 0 {
		if originalErr, ok := details[0].(error); ok {
			logx.Error(
				originalErr,
				"Handling ErrUnknown with underlying error",
			)
			customErr.cause = originalErr
		}
	}

	return &customErr
}

// From maps any error to a *CustomError. Errors that are not already
// a *CustomError are treated as internal failures.
func From(err error) *CustomError {
	if err == nil {
		return nil
	}

	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr
	}

	return NewError(ErrUnknown, err)
}

// IsKind reports whether err is a CustomError of the given kind.
func IsKind(err error, kind Kind) bool {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Kind == kind
	}
	return false
}
