// Package portfolio implements the editable document model: pure, copy-on-write operations over
// types.ResumeDocument values.
package portfolio

import (
	"errors"
	"fmt"
)

// IndexOutOfRangeError is returned when an indexed entry does not exist.
// The document passed to the failing operation is returned unchanged.
type IndexOutOfRangeError struct {
	List   string
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index out of range: %s[%d] (length %d)", e.List, e.Index, e.Length)
}

// UnknownFieldError is returned when a field name is not part of the schema
type UnknownFieldError struct {
	Target string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q for %s", e.Field, e.Target)
}

// UnknownListError is returned for list names other than the three structured lists
type UnknownListError struct {
	List string
}

func (e *UnknownListError) Error() string {
	return fmt.Sprintf("unknown list %q", e.List)
}

// IsIndexOutOfRange reports whether err is (or wraps) an IndexOutOfRangeError
func IsIndexOutOfRange(err error) bool {
	var target *IndexOutOfRangeError
	return errors.As(err, &target)
}

// IsValidation reports whether err belongs to the local validation taxonomy
// (bad index, unknown field or unknown list). Such errors never reach the user as failures.
func IsValidation(err error) bool {
	var unknownField *UnknownFieldError
	var unknownList *UnknownListError
	return IsIndexOutOfRange(err) || errors.As(err, &unknownField) || errors.As(err, &unknownList)
}
