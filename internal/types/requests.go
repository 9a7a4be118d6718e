package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// WorkDescriptionRequest is the context sent to the work-description generator
type WorkDescriptionRequest struct {
	JobTitle    string `json:"job_title" validate:"required"`
	Employer    string `json:"employer"`
	Description string `json:"description"`
}

// ProjectDescriptionRequest is the context sent to the project-description generator
type ProjectDescriptionRequest struct {
	Title       string `json:"title" validate:"required"`
	Year        string `json:"year"`
	TechStack   string `json:"tech_stack"`
	Description string `json:"description"`
}

// CoverLetterRequest pairs a document with the job it targets
type CoverLetterRequest struct {
	Document       ResumeDocument `json:"document"`
	JobDescription string         `json:"jobDescription" validate:"required"`
}

// BioResponse is returned by the bio generator endpoint
type BioResponse struct {
	Success bool   `json:"success"`
	Bio     string `json:"bio,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DescriptionResponse is returned by the description generator endpoints
type DescriptionResponse struct {
	Success     bool   `json:"success"`
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
}

// CoverLetterResponse is returned by the cover letter endpoint
type CoverLetterResponse struct {
	CoverLetter string `json:"coverLetter"`
}

// UploadResponse is returned by the upload endpoint
type UploadResponse struct {
	Success bool          `json:"success"`
	Data    *ResumeRecord `json:"data,omitempty"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// Validate trims the request and checks required fields.
func (r *WorkDescriptionRequest) Validate() error {
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.Employer = strings.TrimSpace(r.Employer)
	r.Description = strings.TrimSpace(r.Description)
	return validator.New().Struct(r)
}

// Validate trims the request and checks required fields.
func (r *ProjectDescriptionRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Year = strings.TrimSpace(r.Year)
	r.TechStack = strings.TrimSpace(r.TechStack)
	r.Description = strings.TrimSpace(r.Description)
	return validator.New().Struct(r)
}

// Validate rejects a blank job description.
func (r *CoverLetterRequest) Validate() error {
	r.JobDescription = strings.TrimSpace(r.JobDescription)
	return validator.New().Struct(r)
}

// WorkRequestFrom builds the generator context for a work entry
func WorkRequestFrom(w WorkExperience) WorkDescriptionRequest {
	return WorkDescriptionRequest{JobTitle: w.JobTitle, Employer: w.Employer, Description: w.Description}
}

// ProjectRequestFrom builds the generator context for a project entry
func ProjectRequestFrom(p Project) ProjectDescriptionRequest {
	return ProjectDescriptionRequest{
		Title:       p.Title,
		Year:        Deref(p.Year),
		TechStack:   Deref(p.TechStack),
		Description: p.Description,
	}
}
