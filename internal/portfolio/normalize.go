package portfolio

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// FromRecord builds the session document from the parse service's record.
// The extracted résumé text becomes the bio; list order is kept as the parser supplied it.
func FromRecord(record types.ResumeRecord) types.ResumeDocument {
	doc := types.ResumeDocument{
		Personal:       normalizePersonal(record.Personal),
		Bio:            record.RawText,
		Skills:         NormalizeSkills(record.Skills),
		WorkExperience: make([]*types.WorkExperience, 0, len(record.WorkExperience)),
		Projects:       make([]*types.Project, 0, len(record.Projects)),
		Education:      make([]*types.Education, 0, len(record.Education)),
	}

	ids := idSet{}
	for _, e := range record.WorkExperience {
		doc.WorkExperience = append(doc.WorkExperience, normalizeWork(e, ids))
	}
	for _, p := range record.Projects {
		doc.Projects = append(doc.Projects, normalizeProject(p, ids))
	}
	for _, e := range record.Education {
		doc.Education = append(doc.Education, normalizeEducation(e, ids))
	}

	return doc
}

// Normalize makes a document loaded from outside the model safe to edit: all four lists are
// concrete slices, nil entries are dropped, skills are deduplicated, blank optional fields become
// absent and every entry has an id. The input is not modified.
func Normalize(doc types.ResumeDocument) types.ResumeDocument {
	out := types.ResumeDocument{
		Personal:       normalizePersonal(doc.Personal),
		Bio:            doc.Bio,
		Skills:         NormalizeSkills(doc.Skills),
		WorkExperience: make([]*types.WorkExperience, 0, len(doc.WorkExperience)),
		Projects:       make([]*types.Project, 0, len(doc.Projects)),
		Education:      make([]*types.Education, 0, len(doc.Education)),
	}

	ids := idSet{}
	for _, e := range doc.WorkExperience {
		if e != nil {
			out.WorkExperience = append(out.WorkExperience, normalizeWork(*e, ids))
		}
	}
	for _, p := range doc.Projects {
		if p != nil {
			out.Projects = append(out.Projects, normalizeProject(*p, ids))
		}
	}
	for _, e := range doc.Education {
		if e != nil {
			out.Education = append(out.Education, normalizeEducation(*e, ids))
		}
	}

	return out
}

// NormalizeSkills trims skills, drops blanks and keeps the first of any case-insensitive duplicates
func NormalizeSkills(skills []string) []string {
	normalized := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))

	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := foldSkill(skill)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, skill)
	}

	return normalized
}

func normalizePersonal(p types.Personal) types.Personal {
	return types.Personal{
		Name:     types.Opt(types.Deref(p.Name)),
		Email:    types.Opt(types.Deref(p.Email)),
		Phone:    types.Opt(types.Deref(p.Phone)),
		Location: types.Opt(types.Deref(p.Location)),
	}
}

func normalizeWork(e types.WorkExperience, ids idSet) *types.WorkExperience {
	e.ID = ids.claim(e.ID)
	e.EndDate = types.Opt(types.Deref(e.EndDate))
	return &e
}

func normalizeProject(p types.Project, ids idSet) *types.Project {
	p.ID = ids.claim(p.ID)
	p.Year = types.Opt(types.Deref(p.Year))
	p.TechStack = types.Opt(types.Deref(p.TechStack))
	return &p
}

func normalizeEducation(e types.Education, ids idSet) *types.Education {
	e.ID = ids.claim(e.ID)
	e.EndDate = types.Opt(types.Deref(e.EndDate))
	e.Major = types.Opt(types.Deref(e.Major))
	e.GPA = types.Opt(types.Deref(e.GPA))
	return &e
}

// idSet tracks entry ids already used in one document
type idSet map[string]struct{}

// claim keeps id when it is new to the document, otherwise it returns a fresh one.
// Blank and repeated ids are both replaced.
func (s idSet) claim(id string) string {
	id = strings.TrimSpace(id)
	if _, taken := s[id]; id == "" || taken {
		id = uuid.NewString()
	}
	s[id] = struct{}{}
	return id
}

// foldSkill maps case variants to one key; upper then lower covers letters such as
// final sigma whose lower forms differ
func foldSkill(skill string) string {
	return strings.ToLower(strings.ToUpper(skill))
}
