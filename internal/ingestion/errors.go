// Package ingestion turns an uploaded résumé file into a structured record: upload validation,
// text extraction per file format, and LLM extraction checked against the record schema.
package ingestion

import (
	"errors"
	"fmt"
)

// UploadError is a rejected upload. Its message is shown to the user verbatim.
type UploadError struct {
	Message string
	Cause   error
}

func (e *UploadError) Error() string {
	return e.Message
}

func (e *UploadError) Unwrap() error {
	return e.Cause
}

// ExtractionError is a failure to turn an accepted upload into a record
type ExtractionError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse resume (%s): %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse resume (%s): %s", e.Stage, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// ErrUnsupported indicates a file format with no registered extractor
var ErrUnsupported = errors.New("unsupported document format")

// IsUploadError reports whether err is an UploadError
func IsUploadError(err error) bool {
	var target *UploadError
	return errors.As(err, &target)
}
