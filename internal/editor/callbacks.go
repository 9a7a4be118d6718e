package editor

import (
	"context"
	"errors"

	"github.com/jonathan/portfolio-builder/internal/augment"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/session"
	"github.com/jonathan/portfolio-builder/internal/types"
)

var errNoGenerator = errors.New("text generation is not configured")

// Callbacks are the writes and reads the editing surface performs for the model.
// Document returns nil when nothing has been loaded.
type Callbacks struct {
	Document         func() *types.ResumeDocument
	SetPersonalField func(key, value string) error
	SetBio           func(text string)
	AddSkill         func(text string) bool
	RemoveSkill      func(index int) bool
	SetEntryField    func(list portfolio.List, index int, field, value string) error
	AppendEntry      func(list portfolio.List) (string, error)
	RemoveEntry      func(list portfolio.List, index int) error
	Generate         func(target augment.Target) error
	Pending          func(target augment.Target) bool
	Export           func() (string, error)
	// Save persists the current document and returns where it went
	Save func() (string, error)
}

// SessionCallbacks wires the model to a session. ctrl and export may be nil.
func SessionCallbacks(s *session.Session, ctrl *augment.Controller, export func(types.ResumeDocument) (string, error)) Callbacks {
	cb := Callbacks{
		Document: func() *types.ResumeDocument {
			doc := s.Snapshot()
			return &doc
		},
		SetPersonalField: s.SetPersonalField,
		SetBio:           s.SetBio,
		AddSkill:         s.AddSkill,
		RemoveSkill:      s.RemoveSkill,
		SetEntryField:    s.SetEntryField,
		AppendEntry:      s.AppendEntry,
		RemoveEntry:      s.RemoveEntry,
		Generate:         func(augment.Target) error { return errNoGenerator },
		Pending:          func(augment.Target) bool { return false },
		Export:           func() (string, error) { return "", errors.New("export is not configured") },
		Save:             func() (string, error) { return "", errors.New("saving is not configured") },
	}

	if ctrl != nil {
		cb.Generate = func(target augment.Target) error {
			_, err := ctrl.Start(context.Background(), target)
			return err
		}
		cb.Pending = func(target augment.Target) bool {
			return ctrl.State(target) == augment.Pending
		}
	}
	if export != nil {
		cb.Export = func() (string, error) {
			return export(s.Snapshot())
		}
	}
	return cb
}
