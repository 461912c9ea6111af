package errors

import (
	"errors"
	"fmt"
)

// Domain error types for the demos

var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")

	// ErrTimeout indicates an operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrExternal indicates an upstream API failure
	ErrExternal = errors.New("external service error")

	// ErrNotImplemented indicates a capability is not implemented
	ErrNotImplemented = errors.New("not implemented")
)

// Provider-specific errors

var (
	// ErrNoAPIKey indicates no API key is configured for the selected provider
	ErrNoAPIKey = errors.New("api key not configured")

	// ErrRateLimited indicates the provider rate limit or quota was exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNoResponse indicates the model returned no usable response
	ErrNoResponse = errors.New("no response from model")

	// ErrMaxTurns indicates the agent loop hit its turn budget
	ErrMaxTurns = errors.New("max agent turns exceeded")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
