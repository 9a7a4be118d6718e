package templates

import (
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// Page is the renderer-neutral presentation of a document under one template.
// Every inclusion and formatting decision is made here.
type Page struct {
	Template string
	Title    string
	Name     string // empty when the document has no name
	Contacts []ContactLine
	Sections []Section
}

// Section is one included block of the page
type Section struct {
	Kind    SectionKind
	Heading string

	Paragraph string        // about
	Badges    []Badge       // skills
	Entries   []Entry       // work_experience, projects, education
	Contacts  []ContactLine // contact
}

// Badge is one skill with its palette color
type Badge struct {
	Text  string
	Color Color
}

// Entry is one structured list item
type Entry struct {
	Heading     string
	Dates       string
	Details     []Detail
	Description string
}

// Detail is a labelled optional line of an entry
type Detail struct {
	Label string
	Value string
}

// Kinds returns the kinds of the included sections in page order
func (p Page) Kinds() []SectionKind {
	kinds := make([]SectionKind, len(p.Sections))
	for i, s := range p.Sections {
		kinds[i] = s.Kind
	}
	return kinds
}

// Section returns the included section of the given kind
func (p Page) Section(kind SectionKind) (Section, bool) {
	for _, s := range p.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// Compose applies the shared rules to doc. Sections whose data is empty are left out.
func Compose(doc types.ResumeDocument, def *Definition) Page {
	contacts := ContactLines(doc.Personal, def)
	page := Page{
		Template: def.Name,
		Title:    PageTitle(doc.Personal, def),
		Name:     strings.TrimSpace(types.Deref(doc.Personal.Name)),
		Contacts: contacts,
	}

	for _, kind := range def.Sections {
		section := Section{Kind: kind, Heading: def.Heading(kind)}
		include := false

		switch kind {
		case SectionAbout:
			section.Paragraph = Summary(doc.Bio)
			include = strings.TrimSpace(section.Paragraph) != ""
		case SectionSkills:
			for i, skill := range doc.Skills {
				section.Badges = append(section.Badges, Badge{Text: skill, Color: BadgeColor(def, i)})
			}
			include = len(section.Badges) > 0
		case SectionWorkExperience:
			section.Entries = workEntries(doc.WorkExperience)
			include = len(section.Entries) > 0
		case SectionProjects:
			section.Entries = projectEntries(doc.Projects)
			include = len(section.Entries) > 0
		case SectionEducation:
			section.Entries = educationEntries(doc.Education)
			include = len(section.Entries) > 0
		case SectionContact:
			section.Contacts = contacts
			include = len(contacts) > 0
		}

		if include {
			page.Sections = append(page.Sections, section)
		}
	}
	return page
}

func workEntries(list []*types.WorkExperience) []Entry {
	var entries []Entry
	for _, w := range list {
		if w == nil {
			continue
		}
		entries = append(entries, Entry{
			Heading:     WorkHeading(w),
			Dates:       DateRange(w.StartDate, w.EndDate),
			Description: strings.TrimSpace(w.Description),
		})
	}
	return entries
}

func projectEntries(list []*types.Project) []Entry {
	var entries []Entry
	for _, p := range list {
		if p == nil {
			continue
		}
		entry := Entry{Heading: ProjectHeading(p), Description: strings.TrimSpace(p.Description)}
		if stack := types.Deref(p.TechStack); stack != "" {
			entry.Details = append(entry.Details, Detail{Label: "Tech Stack", Value: stack})
		}
		entries = append(entries, entry)
	}
	return entries
}

func educationEntries(list []*types.Education) []Entry {
	var entries []Entry
	for _, e := range list {
		if e == nil {
			continue
		}
		entry := Entry{Heading: EducationHeading(e), Dates: DateRange(e.StartDate, e.EndDate)}
		if major := types.Deref(e.Major); major != "" {
			entry.Details = append(entry.Details, Detail{Label: "Major", Value: major})
		}
		if gpa := types.Deref(e.GPA); gpa != "" {
			entry.Details = append(entry.Details, Detail{Label: "GPA", Value: gpa})
		}
		entries = append(entries, entry)
	}
	return entries
}

// Lines flattens the visible text of a section in display order, skipping blank fragments.
// Entry details read "Label: Value".
func (s Section) Lines() []string {
	var lines []string
	add := func(text string) {
		if text = strings.TrimSpace(text); text != "" {
			lines = append(lines, text)
		}
	}

	add(s.Paragraph)
	for _, b := range s.Badges {
		add(b.Text)
	}
	for _, e := range s.Entries {
		add(e.Heading)
		add(e.Dates)
		for _, d := range e.Details {
			add(d.Label + ": " + d.Value)
		}
		add(e.Description)
	}
	for _, c := range s.Contacts {
		add(c.Text)
	}
	return lines
}
