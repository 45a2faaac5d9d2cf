package generator

import (
	"errors"
	"fmt"
)

var (
	ErrLengthTooShort = errors.New("password length must be at least 4")
	ErrEmptyAlphabet  = errors.New("select at least one character set")
)

// ConfigurationError reports a generator config that cannot produce a password.
type ConfigurationError struct {
	Reason error
	Length int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid generator config: %v", e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Reason }

// Code is a short machine code for API responses.
func (e *ConfigurationError) Code() string {
	switch {
	case errors.Is(e.Reason, ErrLengthTooShort):
		return "length_too_short"
	case errors.Is(e.Reason, ErrEmptyAlphabet):
		return "empty_alphabet"
	default:
		return "invalid_config"
	}
}
