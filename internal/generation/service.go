package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/prompts"
	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

const (
	// topSkills is how many skills are quoted in a bio prompt
	topSkills = 5
	// contextLimit is how much of the bio is quoted as résumé context
	contextLimit = 300
)

// Service generates text for the portfolio
type Service struct {
	client llm.Client
	logger *zap.Logger
}

// NewService creates a generation service over client
func NewService(client llm.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// GenerateBio writes a short professional bio from the document
func (s *Service) GenerateBio(ctx context.Context, doc types.ResumeDocument) (string, error) {
	name := types.Deref(doc.Personal.Name)
	if name == "" {
		name = "Professional"
	}
	skills := "various technologies"
	if len(doc.Skills) > 0 {
		skills = strings.Join(doc.Skills[:min(len(doc.Skills), topSkills)], ", ")
	}

	return s.run(ctx, prompts.KeyBio, llm.TierLite, map[string]string{
		"Name":    name,
		"Context": clip(doc.Bio, contextLimit),
		"Skills":  skills,
	})
}

// GenerateWorkDescription rewrites the description of one job
func (s *Service) GenerateWorkDescription(ctx context.Context, req types.WorkDescriptionRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", &ValidationError{Message: "job_title is required", Cause: err}
	}
	return s.run(ctx, prompts.KeyWorkDescription, llm.TierLite, map[string]string{
		"JobTitle":    req.JobTitle,
		"Employer":    orNone(req.Employer),
		"Description": orNone(req.Description),
	})
}

// GenerateProjectDescription writes a STAR-format project description
func (s *Service) GenerateProjectDescription(ctx context.Context, req types.ProjectDescriptionRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", &ValidationError{Message: "title is required", Cause: err}
	}
	return s.run(ctx, prompts.KeyProjectDescription, llm.TierLite, map[string]string{
		"Title":       req.Title,
		"Year":        orNone(req.Year),
		"TechStack":   orNone(req.TechStack),
		"Description": orNone(req.Description),
	})
}

// GenerateCoverLetter writes a Markdown cover letter for the document and job description
func (s *Service) GenerateCoverLetter(ctx context.Context, doc types.ResumeDocument, jobDescription string) (string, error) {
	req := types.CoverLetterRequest{Document: doc, JobDescription: jobDescription}
	if err := req.Validate(); err != nil {
		return "", &ValidationError{Message: "job description is required", Cause: err}
	}

	var experience strings.Builder
	for _, w := range doc.WorkExperience {
		if w == nil {
			continue
		}
		fmt.Fprintf(&experience, "- %s (%s): %s\n", templates.WorkHeading(w), templates.DateRange(w.StartDate, w.EndDate), orNone(w.Description))
	}
	var projects strings.Builder
	for _, p := range doc.Projects {
		if p == nil {
			continue
		}
		fmt.Fprintf(&projects, "- %s: %s\n", templates.ProjectHeading(p), orNone(p.Description))
	}

	name := types.Deref(doc.Personal.Name)
	if name == "" {
		name = "the candidate"
	}

	return s.run(ctx, prompts.KeyCoverLetter, llm.TierAdvanced, map[string]string{
		"Name":           name,
		"Skills":         orNone(strings.Join(doc.Skills, ", ")),
		"Experience":     orNone(strings.TrimSpace(experience.String())),
		"Projects":       orNone(strings.TrimSpace(projects.String())),
		"Context":        clip(doc.Bio, contextLimit),
		"JobDescription": req.JobDescription,
	})
}

func (s *Service) run(ctx context.Context, key string, tier llm.ModelTier, data map[string]string) (string, error) {
	if s.client == nil {
		return "", &GenerationError{Message: "no LLM client configured"}
	}

	prompt, err := prompts.Render(key, data)
	if err != nil {
		return "", &GenerationError{Message: "failed to load prompt", Cause: err}
	}

	s.logger.Debug("generating", zap.String("prompt", key), zap.String("tier", string(tier)))
	text, err := s.client.Generate(ctx, llm.Request{
		System:      prompt.System,
		Prompt:      prompt.User,
		Tier:        tier,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
	})
	if err != nil {
		s.logger.Warn("generation failed", zap.String("prompt", key), zap.Error(err))
		return "", &GenerationError{Message: key, Cause: err}
	}

	text = llm.TrimQuotes(text)
	if text == "" {
		return "", &GenerationError{Message: key + ": model returned no text"}
	}
	return text, nil
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return s
}

func clip(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
