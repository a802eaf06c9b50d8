package netid

import (
	"errors"
	"fmt"
)

// ErrorCode represents a standardized localaddr error code.
type ErrorCode string

// Error codes. The set is closed: every failure a query can surface maps
// onto exactly one of these.
const (
	// ErrCodeNotFound indicates no qualifying local address was found.
	ErrCodeNotFound ErrorCode = "LOCAL_ADDRESS_NOT_FOUND"
	// ErrCodeStrategyFailure indicates the platform decoder's kernel call
	// or response decoding failed.
	ErrCodeStrategyFailure ErrorCode = "STRATEGY_FAILURE"
	// ErrCodePlatformNotSupported indicates no decoder exists for the
	// current operating system.
	ErrCodePlatformNotSupported ErrorCode = "PLATFORM_NOT_SUPPORTED"
	// ErrCodeInvalidName indicates an interface name failed text decoding.
	ErrCodeInvalidName ErrorCode = "INVALID_INTERFACE_NAME"
)

// Error represents a standardized localaddr error.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new Error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithDetails creates a new Error with details.
func NewErrorWithDetails(code ErrorCode, message, details string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError() *Error {
	return NewError(ErrCodeNotFound, "The local address was not available in the network interface table")
}

// NewStrategyError creates a strategy failure error. details carries the
// underlying OS diagnostic text for operator debugging.
func NewStrategyError(details string) *Error {
	return NewErrorWithDetails(ErrCodeStrategyFailure, "The underlying address resolution strategy failed", details)
}

// NewPlatformNotSupportedError creates a platform not supported error
// carrying the OS identifier.
func NewPlatformNotSupportedError(osName string) *Error {
	return NewErrorWithDetails(ErrCodePlatformNotSupported, "The current platform is not supported", osName)
}

// NewInvalidNameError creates an invalid interface name error.
func NewInvalidNameError(details string) *Error {
	return NewErrorWithDetails(ErrCodeInvalidName, "Interface name is not valid text", details)
}

// CodeOf returns the error code of err, or an empty code if err is not a
// localaddr error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err is a not found error.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}
