package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid   ErrorCode = "CONFIG_INVALID"
	ErrSpecInvalid     ErrorCode = "SPEC_INVALID"
	ErrVariableUnbound ErrorCode = "VARIABLE_UNRESOLVED"
	ErrPluginNotFound  ErrorCode = "PLUGIN_NOT_FOUND"
	ErrPluginDeclParse ErrorCode = "PLUGIN_DECL_PARSE"

	// Persistence errors
	ErrLedgerRead    ErrorCode = "LEDGER_READ"
	ErrLedgerWrite   ErrorCode = "LEDGER_WRITE"
	ErrManifestRead  ErrorCode = "MANIFEST_READ"
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"

	// External tool errors
	ErrToolMissing     ErrorCode = "TOOL_MISSING"
	ErrInstallerFailed ErrorCode = "INSTALLER_FAILED"
)

// PodError represents a structured error with code and details
type PodError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PodError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PodError) Unwrap() error {
	return e.Wrapped
}

// Is matches any PodError carrying the same code
func (e *PodError) Is(target error) bool {
	var targetErr *PodError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PodError with the given code and message
func New(code ErrorCode, message string) *PodError {
	return &PodError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PodError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PodError {
	return &PodError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PodError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &PodError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &PodError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PodError) WithDetail(key string, value interface{}) *PodError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithCause sets the wrapped error
func (e *PodError) WithCause(err error) *PodError {
	e.Wrapped = err
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var podErr *PodError
	if errors.As(err, &podErr) {
		return podErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or the empty code if
// err carries no PodError
func GetErrorCode(err error) ErrorCode {
	var podErr *PodError
	if errors.As(err, &podErr) {
		return podErr.Code
	}
	return ""
}

// GetErrorDetails returns the details from an error, or nil if not a PodError
func GetErrorDetails(err error) map[string]interface{} {
	var podErr *PodError
	if errors.As(err, &podErr) {
		return podErr.Details
	}
	return nil
}

// IsFatalPersistence reports whether err came from reading or writing the
// ledger or the manifest.
func IsFatalPersistence(err error) bool {
	switch GetErrorCode(err) {
	case ErrLedgerRead, ErrLedgerWrite, ErrManifestRead, ErrManifestWrite:
		return true
	}
	return false
}
