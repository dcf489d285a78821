package errors

import (
	"net/http"

	"userhub/internal/errors"
)

// Kind classifies an application error independently of its transport mapping.
type Kind string

const (
	KindConflict        Kind = "conflict"
	KindInvalidArgument Kind = "invalid_argument"
	KindNotFound        Kind = "not_found"
	KindInternal        Kind = "internal"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Error category
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing message
	Details() string   // Optional detail, never sent for 5xx
}

// BaseError is the default AppError implementation
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context while keeping it matchable with errors.Is
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) Kind() Kind {
	return e.kind
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying the given details.
// The copy still matches the original with errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches BaseErrors by business code so WithDetails copies compare equal to their template.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// KindOf returns the Kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	if appErr, ok := errors.AsType[AppError](err); ok {
		return appErr.Kind()
	}

	return KindInternal
}

// Predefined error types. Business failures use 400 to keep the public contract stable.
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		KindNotFound,
		http.StatusBadRequest,
		"USER_NOT_FOUND",
		"user does not exist",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		KindConflict,
		http.StatusBadRequest,
		"USER_ALREADY_EXISTS",
		"username or email already exists",
		"",
	)

	ErrUsernameAlreadyExists = NewBaseError(
		KindConflict,
		http.StatusBadRequest,
		"USERNAME_ALREADY_EXISTS",
		"username already exists",
		"",
	)

	ErrEmailAlreadyExists = NewBaseError(
		KindConflict,
		http.StatusBadRequest,
		"EMAIL_ALREADY_EXISTS",
		"email already exists",
		"",
	)

	// Password-related errors
	ErrPasswordStrength = NewBaseError(
		KindInvalidArgument,
		http.StatusBadRequest,
		"PASSWORD_STRENGTH",
		"password does not meet strength requirements",
		"",
	)

	ErrPasswordTooLong = NewBaseError(
		KindInvalidArgument,
		http.StatusBadRequest,
		"PASSWORD_TOO_LONG",
		"password exceeds the maximum supported length",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"password encryption failed",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		KindInvalidArgument,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"validation failed",
		"",
	)

	ErrInvalidPagination = NewBaseError(
		KindInvalidArgument,
		http.StatusBadRequest,
		"INVALID_PAGINATION",
		"page must not be negative and size must be positive",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"system error, please try again later",
		"",
	)
)

// DatabaseExecuteError represents a storage failure, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error to errors.Is / errors.As
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

func (e *DatabaseExecuteError) Details() string {
	return e.details
}
