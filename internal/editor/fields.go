package editor

import (
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/augment"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// FieldKind says which document operation edits a field
type FieldKind int

const (
	FieldPersonal FieldKind = iota
	FieldBio
	FieldSkill
	FieldEntry
	// FieldAddEntry stands in for an empty list so it can still be appended to
	FieldAddEntry
)

// Field is one row of the editing form
type Field struct {
	Kind  FieldKind
	Key   string // personal key or entry field name
	List  portfolio.List
	Index int // skill or entry index
	Value string
}

// Label is the form label of the field
func (f Field) Label() string {
	switch f.Kind {
	case FieldPersonal:
		return f.Key
	case FieldBio:
		return "bio"
	case FieldSkill:
		return fmt.Sprintf("skill %d", f.Index+1)
	case FieldAddEntry:
		return fmt.Sprintf("(add %s entry)", f.List)
	default:
		return fmt.Sprintf("%s[%d].%s", f.List, f.Index, f.Key)
	}
}

// Multiline reports whether the field is edited in a text area
func (f Field) Multiline() bool {
	return f.Kind == FieldBio || (f.Kind == FieldEntry && f.Key == portfolio.FieldDescription)
}

// Target returns the generation target of an augmentable field
func (f Field) Target() (augment.Target, bool) {
	switch {
	case f.Kind == FieldBio:
		return augment.Bio(), true
	case f.Kind == FieldEntry && f.Key == portfolio.FieldDescription && f.List == portfolio.ListWorkExperience:
		return augment.WorkExperience(f.Index), true
	case f.Kind == FieldEntry && f.Key == portfolio.FieldDescription && f.List == portfolio.ListProjects:
		return augment.Project(f.Index), true
	default:
		return augment.Target{}, false
	}
}

// Fields lists every editable field of doc in form order
func Fields(doc types.ResumeDocument) []Field {
	var fields []Field
	for _, key := range portfolio.PersonalFields() {
		value, _ := portfolio.PersonalField(doc, key)
		fields = append(fields, Field{Kind: FieldPersonal, Key: key, Value: value})
	}
	fields = append(fields, Field{Kind: FieldBio, Value: doc.Bio})
	for i, skill := range doc.Skills {
		fields = append(fields, Field{Kind: FieldSkill, Index: i, Value: skill})
	}
	for _, list := range portfolio.Lists() {
		if portfolio.Len(doc, list) == 0 {
			fields = append(fields, Field{Kind: FieldAddEntry, List: list})
			continue
		}
		for i := 0; i < portfolio.Len(doc, list); i++ {
			for _, key := range portfolio.EntryFields(list) {
				value, _ := portfolio.EntryField(doc, list, i, key)
				fields = append(fields, Field{Kind: FieldEntry, Key: key, List: list, Index: i, Value: value})
			}
		}
	}
	return fields
}

// preview is the one-line form of a field value
func preview(value string, limit int) string {
	value = strings.Join(strings.Fields(value), " ")
	r := []rune(value)
	if limit > 1 && len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return value
}
