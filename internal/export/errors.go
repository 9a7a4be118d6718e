// Package export renders a document snapshot into a single self-contained HTML file,
// and optionally prints that file to PDF.
package export

import "fmt"

// Stage names the export step that failed
type Stage string

const (
	StageTemplate Stage = "template"
	StageInspect  Stage = "inspect"
	StagePrint    Stage = "print"
	StageWrite    Stage = "write"
)

// Error is an export failure at one stage
type Error struct {
	Stage   Stage
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("export %s: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("export %s: %s: %v", e.Stage, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
