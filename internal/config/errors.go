package config

import "fmt"

// ConfigError represents a fatal startup configuration error
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

// NewConfigError creates a new configuration error
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// WrapConfigError creates a configuration error wrapping an underlying cause
func WrapConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error for %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("config error for %s: %s", e.Field, e.Message)
}

// Unwrap implements error unwrapping
func (e *ConfigError) Unwrap() error {
	return e.Err
}
