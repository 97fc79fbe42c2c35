package companyintel

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL   = "internal"
	EINVALID    = "invalid"
	ENOTFOUND   = "not_found"
	EFETCH      = "fetch"
	EGENERATION = "generation"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code & message.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("companyintel error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// FetchError is returned when a page could not be fetched after all retry
// attempts. Err is the error from the last attempt.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// GenerationError is returned when the model call fails or returns an
// unusable response. Generation is never retried.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("generate report: %v", e.Err)
	}
	return fmt.Sprintf("generate report with %s: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	var fe *FetchError
	var ge *GenerationError
	switch {
	case errors.As(err, &fe):
		return EFETCH
	case errors.As(err, &ge):
		return EGENERATION
	case errors.As(err, &e):
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	var fe *FetchError
	var ge *GenerationError
	switch {
	case errors.As(err, &fe):
		return fe.Error()
	case errors.As(err, &ge):
		return ge.Error()
	case errors.As(err, &e):
		return e.Message
	}
	return "Internal error."
}
