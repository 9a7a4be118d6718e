package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecord_Valid(t *testing.T) {
	record := `{
		"personal": {"name": "Ada", "email": null, "phone": "020", "location": null},
		"skills": ["Go", "SQL"],
		"work_experience": [{"employer": "Acme", "job_title": "Engineer", "start_date": "2020", "end_date": null, "description": "x"}],
		"projects": [{"title": "Engine", "year": "1843", "tech_stack": null, "description": ""}],
		"education": []
	}`
	assert.NoError(t, ValidateRecord([]byte(record)))
}

func TestValidateRecord_MissingListsAllowed(t *testing.T) {
	assert.NoError(t, ValidateRecord([]byte(`{"personal": {"name": "Ada"}}`)))
	assert.NoError(t, ValidateRecord([]byte(`{"skills": null, "projects": null}`)))
}

func TestValidateRecord_SavedDocument(t *testing.T) {
	doc := `{
		"personal": {"name": "Ada"},
		"bio": "Poetical science.",
		"skills": [],
		"work_experience": [{"id": "0b7c", "job_title": "Engineer", "employer": "Acme", "start_date": "2020", "description": ""}],
		"projects": [],
		"education": []
	}`
	assert.NoError(t, ValidateRecord([]byte(doc)))
}

func TestValidateRecord_WrongTypes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"skills not array", `{"skills": "Go, SQL"}`, "skills"},
		{"skill not string", `{"skills": ["Go", 3]}`, "skills.1"},
		{"numeric year", `{"projects": [{"title": "Engine", "year": 1843}]}`, "projects.0.year"},
		{"entry not object", `{"education": ["MIT"]}`, "education.0"},
		{"root not object", `[]`, "(root)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord([]byte(tt.input))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			fields := make([]string, len(validationErr.Errors))
			for i, e := range validationErr.Errors {
				fields[i] = e.Field
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateRecord_MalformedJSON(t *testing.T) {
	err := ValidateRecord([]byte(`{"skills": [`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "skills", Message: "Invalid type"}}}
	assert.Equal(t, "validation failed:\n  1. skills: Invalid type\n", err.Error())
}
