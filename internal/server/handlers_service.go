package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// multipartOverhead is the room left for multipart headers on top of the file size limit
const multipartOverhead = 1 << 20

// TemplateInfo describes one registered template
type TemplateInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Palette     []string          `json:"palette"`
	Headings    map[string]string `json:"headings"`
}

// TemplatesResponse represents the response for /templates
type TemplatesResponse struct {
	Default   string         `json:"default"`
	Templates []TemplateInfo `json:"templates"`
}

// handleListTemplates lists the registered templates
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	resp := TemplatesResponse{Default: s.config.Template}
	for _, name := range templates.Names() {
		def, err := templates.Lookup(name)
		if err != nil {
			s.failure(w, err)
			return
		}
		info := TemplateInfo{Name: name, Description: def.Description, Headings: make(map[string]string)}
		for _, c := range def.Palette {
			info.Palette = append(info.Palette, c.Background)
		}
		for _, kind := range templates.SectionKinds() {
			info.Headings[string(kind)] = def.Heading(kind)
		}
		resp.Templates = append(resp.Templates, info)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// readUpload reads the multipart "file" field within the configured size limit
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.parser.MaxBytes()+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, ingestion.TooLarge(s.parser.MaxBytes())
		}
		return "", nil, ingestion.NewUpload("", 0).Validate(s.parser.MaxBytes())
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, &ErrValidation{Field: "file", Message: "failed to read upload: " + err.Error()}
	}
	return header.Filename, content, nil
}

// handleUploadResume parses an uploaded résumé into a structured record
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	filename, content, err := s.readUpload(w, r)
	if err == nil {
		var record *types.ResumeRecord
		record, _, err = s.parser.Parse(r.Context(), filename, content)
		if err == nil {
			s.jsonResponse(w, http.StatusOK, types.UploadResponse{
				Success: true,
				Data:    record,
				Message: "Resume parsed successfully",
			})
			return
		}
	}

	status := HTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError && status != http.StatusBadGateway {
		message = "An error occurred while processing the file: " + err.Error()
	}
	s.logger.Info("resume upload rejected", zap.Int("status", status), zap.Error(err))
	s.jsonResponse(w, status, types.UploadResponse{Success: false, Error: message})
}

// handleGenerateBio writes a bio for the posted document
func (s *Server) handleGenerateBio(w http.ResponseWriter, r *http.Request) {
	var doc types.ResumeDocument
	if err := decodeJSON(r, &doc); err != nil {
		s.jsonResponse(w, HTTPStatus(err), types.BioResponse{Success: false, Error: err.Error()})
		return
	}

	bio, err := s.generator.GenerateBio(r.Context(), portfolio.Normalize(doc))
	if err != nil {
		s.jsonResponse(w, HTTPStatus(err), types.BioResponse{
			Success: false,
			Error:   "Failed to generate bio: " + err.Error(),
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, types.BioResponse{
		Success: true,
		Bio:     bio,
		Message: "Bio generated successfully",
	})
}

// handleGenerateWorkDescription writes a description for one job
func (s *Server) handleGenerateWorkDescription(w http.ResponseWriter, r *http.Request) {
	var req types.WorkDescriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.descriptionFailure(w, err)
		return
	}

	text, err := s.generator.GenerateWorkDescription(r.Context(), req)
	if err != nil {
		s.descriptionFailure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.DescriptionResponse{Success: true, Description: text})
}

// handleGenerateProjectDescription writes a description for one project
func (s *Server) handleGenerateProjectDescription(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectDescriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.descriptionFailure(w, err)
		return
	}

	text, err := s.generator.GenerateProjectDescription(r.Context(), req)
	if err != nil {
		s.descriptionFailure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.DescriptionResponse{Success: true, Description: text})
}

func (s *Server) descriptionFailure(w http.ResponseWriter, err error) {
	s.jsonResponse(w, HTTPStatus(err), types.DescriptionResponse{Success: false, Error: err.Error()})
}

// handleGenerateCoverLetter writes a cover letter for the posted document and job
func (s *Server) handleGenerateCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req types.CoverLetterRequest
	if err := decodeJSON(r, &req); err != nil {
		s.failure(w, err)
		return
	}

	letter, err := s.generator.GenerateCoverLetter(r.Context(), portfolio.Normalize(req.Document), req.JobDescription)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.CoverLetterResponse{CoverLetter: letter})
}
