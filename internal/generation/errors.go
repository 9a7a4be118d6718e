// Package generation produces portfolio prose (bios, entry descriptions, cover letters)
// through an LLM client.
package generation

import (
	"errors"
	"fmt"
)

// ValidationError represents a request that cannot be sent to the model
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid generation request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid generation request: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// GenerationError represents a failed or empty model response
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
