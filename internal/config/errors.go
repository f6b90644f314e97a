package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidYAML indicates the config file failed to parse.
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// ErrValidationFailed indicates a loaded configuration failed validation.
	ErrValidationFailed = errors.New("configuration validation failed")

	// ErrMissingRequiredField indicates a required field was left empty
	// after defaults were merged in.
	ErrMissingRequiredField = errors.New("missing required field")
)

// LoadError wraps a load-time failure with the file that caused it.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("config: failed to load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: field %q: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
