// Package templates holds the named portfolio themes and the shared, pure rules that decide
// which sections appear and how their text is formatted. Both renderers consume the Page
// produced by Compose, so they differ only in their output sink.
package templates

import (
	"errors"
	"fmt"
)

// UnknownTemplateError is returned when a template name is not registered
type UnknownTemplateError struct {
	Name      string
	Available []string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q (available: %v)", e.Name, e.Available)
}

// DefinitionError represents an invalid or unreadable template definition
type DefinitionError struct {
	Message string
	Cause   error
}

func (e *DefinitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template definition error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template definition error: %s", e.Message)
}

func (e *DefinitionError) Unwrap() error {
	return e.Cause
}

// IsUnknownTemplate reports whether err is an UnknownTemplateError
func IsUnknownTemplate(err error) bool {
	var target *UnknownTemplateError
	return errors.As(err, &target)
}
