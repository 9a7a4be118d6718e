// Package augment replaces single text fields of the session document with generated text.
// Each field target moves through Idle -> Pending -> Idle; results are applied to the document
// value current when the generation finishes.
package augment

import (
	"errors"
	"fmt"
)

// ErrGenerationAlreadyInFlight is returned when the target already has a pending generation.
// Editing surfaces disable the trigger while a target is pending, so this is not shown to users.
var ErrGenerationAlreadyInFlight = errors.New("generation already in flight")

// RemoteServiceError wraps a failed call to the text generator.
// The document is left as it was and the user may trigger the generation again.
type RemoteServiceError struct {
	Target  string
	Message string
	Cause   error
}

func (e *RemoteServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s for %s: %v", e.Message, e.Target, e.Cause)
	}
	return fmt.Sprintf("%s for %s", e.Message, e.Target)
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Cause
}

// InvalidTargetError is returned when a target string cannot be parsed
type InvalidTargetError struct {
	Value string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid generation target %q (want bio, workExperience[i] or project[i])", e.Value)
}

// IsRemote reports whether err is a RemoteServiceError
func IsRemote(err error) bool {
	var target *RemoteServiceError
	return errors.As(err, &target)
}
