// Package schemas checks résumé records and saved portfolio documents against
// an embedded JSON Schema.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// RecordSchemaName identifies the embedded schema in errors
const RecordSchemaName = "resume_record.schema.json"

//go:embed resume_record.schema.json
var recordSchema string

// FieldError is one schema violation; Field is a dotted path or "(root)"
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation failed:\n")
	for i, fe := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return b.String()
}

// SchemaLoadError means either the schema or the document could not be read as JSON
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	msg := fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// compiled record schema, built on first use
var record = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchema))
	if err != nil {
		return nil, &SchemaLoadError{Path: RecordSchemaName, Message: "invalid schema", Cause: err}
	}
	return s, nil
})

// ValidateRecord checks an extracted record or a saved document. Lists may be
// missing or null; present values must have the right types.
func ValidateRecord(data []byte) error {
	schema, err := record()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaLoadError{Path: RecordSchemaName, Message: "document could not be loaded", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	violations := result.Errors()
	out := &ValidationError{Errors: make([]FieldError, len(violations))}
	for i, v := range violations {
		field := v.Field()
		if field == "" {
			field = "(root)"
		}
		out.Errors[i] = FieldError{Field: field, Message: v.Description()}
	}
	return out
}
