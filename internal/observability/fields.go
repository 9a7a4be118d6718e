package observability

import (
	"unicode/utf8"

	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// DocumentFields summarizes a document as structured log fields without logging its contents
func DocumentFields(doc types.ResumeDocument) []zap.Field {
	return []zap.Field{
		zap.Bool("has_name", doc.Personal.Name != nil),
		zap.Int("bio_chars", utf8.RuneCountInString(doc.Bio)),
		zap.Int("skills", len(doc.Skills)),
		zap.Int("work_experience", len(doc.WorkExperience)),
		zap.Int("projects", len(doc.Projects)),
		zap.Int("education", len(doc.Education)),
	}
}
