package machine

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes machine errors.
type ErrorCode string

const (
	// ErrCodeInvalidConfig indicates a rejected configuration change:
	// unknown rotor or reflector, reused plugboard letter, too many pairs,
	// a wiring table that is not an involution, and similar.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"

	// ErrCodeInvalidContact indicates a character outside A-Z reached the
	// cipher core. Callers are expected to normalize input first.
	ErrCodeInvalidContact ErrorCode = "INVALID_CONTACT"

	// ErrCodeNotConfigured indicates Encode was called without a reflector
	// or with a rotor count outside [MinRotors, MaxRotors].
	ErrCodeNotConfigured ErrorCode = "NOT_CONFIGURED"
)

// Error is returned by every fallible operation in this package.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Component names the part that rejected the operation
	// ("rotor", "assembly", "reflector", "plugboard", "machine").
	Component string

	// Message is a human-readable description.
	Message string
}

func (e *Error) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Component, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newConfigError(component, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidConfig, Component: component, Message: fmt.Sprintf(format, args...)}
}

func newContactError(component, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidContact, Component: component, Message: fmt.Sprintf(format, args...)}
}

func newNotConfiguredError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeNotConfigured, Component: "machine", Message: fmt.Sprintf(format, args...)}
}

func hasCode(err error, code ErrorCode) bool {
	var me *Error
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}

// IsInvalidConfig reports whether err is a rejected configuration change.
func IsInvalidConfig(err error) bool { return hasCode(err, ErrCodeInvalidConfig) }

// IsInvalidContact reports whether err is an out-of-alphabet character.
func IsInvalidContact(err error) bool { return hasCode(err, ErrCodeInvalidContact) }

// IsNotConfigured reports whether err is an incomplete machine.
func IsNotConfigured(err error) bool { return hasCode(err, ErrCodeNotConfigured) }
