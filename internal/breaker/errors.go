package breaker

import (
	"errors"
	"fmt"
	"math/big"
)

// ConfigError reports a malformed constraint. It is returned before any
// candidate is generated.
type ConfigError struct {
	// Field names the offending constraint, e.g. "rotors[1]" or "plugboard".
	Field string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid constraint %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func wrapConfigError(field string, err error) *ConfigError {
	return &ConfigError{Field: field, Message: err.Error(), Err: err}
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// SearchTooLargeError is returned when the search space exceeds the limit
// set with WithCandidateLimit.
type SearchTooLargeError struct {
	Size  *big.Int
	Limit int64
}

func (e *SearchTooLargeError) Error() string {
	return fmt.Sprintf("search space of %s candidates exceeds limit of %d", e.Size, e.Limit)
}

// IsSearchTooLarge reports whether err is or wraps a *SearchTooLargeError.
func IsSearchTooLarge(err error) bool {
	var se *SearchTooLargeError
	return errors.As(err, &se)
}
