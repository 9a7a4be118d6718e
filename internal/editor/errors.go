// Package editor is the interactive renderer: a terminal preview of the session document plus a
// bubbletea model for navigating and editing it. It never writes to the document itself; every
// change goes through the callbacks supplied by the editing surface.
package editor

import "errors"

// ErrMissingDocument is returned when there is no document to render.
// Callers send the user back to upload or parse a résumé first.
var ErrMissingDocument = errors.New("no document loaded")
