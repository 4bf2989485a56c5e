// Package config holds the generator's runtime configuration: package
// reference overrides, output root, collision policy, and emitter
// formatting. Compiled defaults are overlaid by CLI flags.
package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrInvalidCollisionPolicy indicates an unrecognized collision policy value.
	ErrInvalidCollisionPolicy = errors.New("config: invalid collision policy, must be one of: ask, archive, overwrite, fail")
)

// ValidationError represents a single validation error with field context.
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	if e.Wrapped != nil {
		return e.Wrapped
	}
	return ErrInvalidConfig
}
