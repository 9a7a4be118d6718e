// Package types provides type definitions for structured data used throughout the portfolio builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ResumeDocument is the editable portfolio record owned by one editing session.
// The four list fields are never nil once the document has been normalized.
// Entries are shared between successive document values and must not be written in place.
type ResumeDocument struct {
	Personal       Personal          `json:"personal"`
	Bio            string            `json:"bio"`
	Skills         []string          `json:"skills"`
	WorkExperience []*WorkExperience `json:"work_experience"`
	Projects       []*Project        `json:"projects"`
	Education      []*Education      `json:"education"`
}

// Personal holds contact details. A nil field is absent and is never rendered.
type Personal struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Location *string `json:"location,omitempty"`
}

// WorkExperience is one job held by the candidate
type WorkExperience struct {
	ID          string  `json:"id"`
	JobTitle    string  `json:"job_title"`
	Employer    string  `json:"employer"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	Description string  `json:"description"`
}

// Project is one portfolio project
type Project struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Year        *string `json:"year,omitempty"`
	TechStack   *string `json:"tech_stack,omitempty"`
	Description string  `json:"description"`
}

// Education is one degree or program
type Education struct {
	ID          string  `json:"id"`
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	Major       *string `json:"major,omitempty"`
	GPA         *string `json:"gpa,omitempty"`
}

// ResumeRecord is the structured output of the upload/parse service before normalization.
// List fields may be missing and entries may carry blank optional fields.
type ResumeRecord struct {
	Personal       Personal         `json:"personal"`
	RawText        string           `json:"raw_text"`
	Skills         []string         `json:"skills"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Projects       []Project        `json:"projects"`
	Education      []Education      `json:"education"`
	WordCount      int              `json:"word_count,omitempty"`
}

// Opt returns a pointer to the trimmed value, or nil when the value is blank
func Opt(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Deref returns the pointed-to string, or empty string if nil
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
