// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrShapeMismatch    = errors.New("shape mismatch")
	ErrConfigInvalid    = errors.New("invalid configuration")
)

// ParameterError reports an input outside its documented domain.
// It is only produced by the opt-in strict validation paths.
type ParameterError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// NewParameterError creates a new ParameterError.
func NewParameterError(field string, value interface{}, message string) *ParameterError {
	return &ParameterError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ShapeError represents a set of array shapes that cannot be broadcast together.
type ShapeError struct {
	Shapes  [][]int
	Message string
}

func (e *ShapeError) Error() string {
	parts := make([]string, len(e.Shapes))
	for i, s := range e.Shapes {
		parts[i] = fmt.Sprint(s)
	}
	if e.Message != "" {
		return fmt.Sprintf("shape mismatch %s: %s", strings.Join(parts, " "), e.Message)
	}
	return fmt.Sprintf("shape mismatch %s", strings.Join(parts, " "))
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// NewShapeError creates a new ShapeError.
func NewShapeError(message string, shapes ...[]int) *ShapeError {
	return &ShapeError{
		Shapes:  shapes,
		Message: message,
	}
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error [%s]: %s", e.Key, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfigInvalid
}

// NewConfigError creates a new ConfigError.
func NewConfigError(key, message string) *ConfigError {
	return &ConfigError{
		Key:     key,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
