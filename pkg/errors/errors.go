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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Locator errors
	ErrConfigNotFound    ErrorCode = "CONFIG_NOT_FOUND"
	ErrNotAGitRepository ErrorCode = "NOT_A_GIT_REPOSITORY"
	ErrLibraryNotFound   ErrorCode = "LIBRARY_NOT_FOUND"

	// Codec errors
	ErrMalformedTable    ErrorCode = "MALFORMED_TABLE"
	ErrMalformedHook     ErrorCode = "MALFORMED_HOOK"
	ErrMalformedSettings ErrorCode = "MALFORMED_SETTINGS"

	// Desired state errors
	ErrDuplicateDesiredEntry ErrorCode = "DUPLICATE_DESIRED_ENTRY"

	// Write path errors
	ErrBackupFailed ErrorCode = "BACKUP_FAILED"
	ErrWriteFailed  ErrorCode = "WRITE_FAILED"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"

	// External command errors
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"
)

// KilmError represents a structured error with code and details
type KilmError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KilmError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KilmError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *KilmError) Is(target error) bool {
	var targetErr *KilmError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new KilmError with the given code and message
func New(code ErrorCode, message string) *KilmError {
	return &KilmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new KilmError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KilmError {
	return &KilmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a KilmError
func Wrap(err error, code ErrorCode, message string) *KilmError {
	if err == nil {
		return nil
	}
	return &KilmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KilmError {
	if err == nil {
		return nil
	}
	return &KilmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *KilmError) WithDetail(key string, value interface{}) *KilmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *KilmError) WithDetails(details map[string]interface{}) *KilmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithPath attaches path as the "path" detail of a coded error. Other
// errors are returned unchanged.
func WithPath(err error, path string) error {
	var kerr *KilmError
	if As(err, &kerr) {
		return kerr.WithDetail("path", path)
	}
	return err
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var kilmErr *KilmError
	if errors.As(err, &kilmErr) {
		return kilmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a KilmError
func GetErrorCode(err error) ErrorCode {
	var kilmErr *KilmError
	if errors.As(err, &kilmErr) {
		return kilmErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a KilmError
func GetErrorDetails(err error) map[string]interface{} {
	var kilmErr *KilmError
	if errors.As(err, &kilmErr) {
		return kilmErr.Details
	}
	return nil
}

// exitCodes maps the user-facing result codes to process exit statuses.
var exitCodes = map[ErrorCode]int{
	ErrConfigNotFound:        2,
	ErrNotAGitRepository:     3,
	ErrMalformedTable:        4,
	ErrMalformedHook:         4,
	ErrMalformedSettings:     4,
	ErrBackupFailed:          5,
	ErrWriteFailed:           6,
	ErrDuplicateDesiredEntry: 7,
}

// ExitCode returns the process exit status for err. A nil error is 0 and
// any error without a dedicated status is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := exitCodes[GetErrorCode(err)]; ok {
		return code
	}
	return 1
}

// Is reports whether any error in err's tree matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, see errors.Join
func Join(errs ...error) error {
	return errors.Join(errs...)
}
