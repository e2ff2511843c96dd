package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	CodeUnknown Code = "unknown"

	// Character API errors
	CodeFetchFailed  Code = "fetch_failed"
	CodeDecodeFailed Code = "decode_failed"
	CodeNotFound     Code = "not_found"
	CodeRateLimited  Code = "rate_limited"

	// Local page cache errors
	CodeCacheFailed Code = "cache_failed"

	CodeConfigurationError Code = "configuration_error"
)

// Error carries a machine-readable code alongside the message shown to users.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Summary returns the message of the outermost structured error, falling back
// to err.Error(). Used where a full chain would be too long to display.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var structured Error
	if errors.As(err, &structured) && structured.Message != "" {
		return structured.Message
	}
	return err.Error()
}
