package templates

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mustLookup(t *testing.T, name string) *Definition {
	t.Helper()
	def, err := Lookup(name)
	require.NoError(t, err)
	return def
}

func fullDocument() types.ResumeDocument {
	return types.ResumeDocument{
		Personal: types.Personal{
			Name:     strPtr("Ada Lovelace"),
			Email:    strPtr("ada@example.com"),
			Phone:    strPtr("555 0100"),
			Location: strPtr("London"),
		},
		Bio:    "Analyst and programmer.",
		Skills: []string{"Go", "Python", "SQL", "Rust", "Docker"},
		WorkExperience: []*types.WorkExperience{
			{ID: "w1", JobTitle: "Engineer", Employer: "Acme", StartDate: "2020", Description: "Built engines."},
			{ID: "w2", JobTitle: "Intern", Employer: "Initech", StartDate: "2019", EndDate: strPtr("2020")},
		},
		Projects: []*types.Project{
			{ID: "p1", Title: "Engine", Year: strPtr("1843"), TechStack: strPtr("Brass"), Description: "Notes."},
			{ID: "p2", Title: "Loom"},
		},
		Education: []*types.Education{
			{ID: "e1", Institution: "London", Degree: "Mathematics", StartDate: "1840", Major: strPtr("Analysis")},
		},
	}
}

func TestBuiltin_Names(t *testing.T) {
	assert.Equal(t, []string{"minimal", "modern"}, Names())

	_, err := Lookup("brutalist")
	require.Error(t, err)
	assert.True(t, IsUnknownTemplate(err))
	assert.Contains(t, err.Error(), "minimal")
}

func TestBuiltin_Definitions(t *testing.T) {
	minimal := mustLookup(t, "minimal")
	modern := mustLookup(t, "modern")

	assert.Equal(t, SectionKinds(), minimal.Sections)
	assert.Equal(t, SectionKinds(), modern.Sections)
	assert.Equal(t, "About", minimal.Heading(SectionAbout))
	assert.Equal(t, "Let's Connect", modern.Heading(SectionContact))
	assert.Len(t, minimal.Palette, 1)

	var names []string
	for _, c := range modern.Palette {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"blue", "purple", "green", "pink"}, names)
	assert.True(t, modern.LinkPhone)
	assert.False(t, minimal.LinkPhone)
}

func TestLookup_ReturnsIndependentCopies(t *testing.T) {
	def := mustLookup(t, "modern")
	def.Palette[0] = Color{Name: "red"}
	def.Palette = append(def.Palette, Color{Name: "black"})
	def.Headings[SectionContact] = "Call Me"
	def.Sections[0] = SectionContact
	def.LinkPhone = false

	again := mustLookup(t, "modern")
	assert.Equal(t, "blue", again.Palette[0].Name)
	assert.Len(t, again.Palette, 4)
	assert.Equal(t, "Let's Connect", again.Heading(SectionContact))
	assert.Equal(t, SectionKinds(), again.Sections)
	assert.True(t, again.LinkPhone)
}

func TestNewRegistry_DetachesFromInput(t *testing.T) {
	def, err := Parse([]byte(`name: plain
sections: [about]
headings: {about: About}
palette: [{name: grey}]
`))
	require.NoError(t, err)
	r, err := NewRegistry(def)
	require.NoError(t, err)

	def.Headings[SectionAbout] = "Changed"
	def.Palette[0].Name = "orange"

	got, err := r.Lookup("plain")
	require.NoError(t, err)
	assert.Equal(t, "About", got.Heading(SectionAbout))
	assert.Equal(t, "grey", got.Palette[0].Name)
}

func TestParse_InvalidDefinitions(t *testing.T) {
	_, err := Parse([]byte("name: [unterminated"))
	require.Error(t, err)

	def, err := Parse([]byte("name: odd\nsections: [about, hobbies]\nheadings: {about: A}\npalette: [{name: x}]\n"))
	require.NoError(t, err)
	_, err = NewRegistry(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hobbies")

	def, err = Parse([]byte("name: bare\nsections: [about]\nheadings: {about: A}\n"))
	require.NoError(t, err)
	_, err = NewRegistry(def)
	assert.ErrorContains(t, err, "palette")
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		bio  string
		want string
	}{
		{"empty", "", ""},
		{"short", "Hello", "Hello"},
		{"exactly limit", strings.Repeat("a", 300), strings.Repeat("a", 300)},
		{"one over", strings.Repeat("a", 301), strings.Repeat("a", 300) + "..."},
		{"multibyte over", strings.Repeat("é", 310), strings.Repeat("é", 300) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.bio))
		})
	}
}

func TestSummary_LengthProperty(t *testing.T) {
	for n := 0; n < 700; n += 7 {
		bio := strings.Repeat("x", n)
		got := Summary(bio)
		if n <= SummaryLimit {
			assert.Equal(t, bio, got)
			continue
		}
		assert.True(t, strings.HasSuffix(got, Ellipsis))
		assert.Equal(t, SummaryLimit, utf8.RuneCountInString(strings.TrimSuffix(got, Ellipsis)))
	}
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "2020 – Present", DateRange("2020", nil))
	assert.Equal(t, "2020 – Present", DateRange("2020", strPtr("")))
	assert.Equal(t, "2019 – 2020", DateRange("2019", strPtr("2020")))
	assert.Equal(t, "2020", DateRange("", strPtr("2020")))
}

func TestContactLines(t *testing.T) {
	p := types.Personal{Email: strPtr("a@b.c"), Phone: strPtr("555 0100")}

	minimal := ContactLines(p, mustLookup(t, "minimal"))
	require.Len(t, minimal, 2)
	assert.Equal(t, "mailto:a@b.c", minimal[0].Href)
	assert.Empty(t, minimal[1].Href)

	modern := ContactLines(p, mustLookup(t, "modern"))
	assert.Equal(t, "tel:5550100", modern[1].Href)

	assert.Empty(t, ContactLines(types.Personal{}, mustLookup(t, "modern")))
}

func TestBadgeColor_CyclesPalette(t *testing.T) {
	modern := mustLookup(t, "modern")

	assert.Equal(t, "blue", BadgeColor(modern, 0).Name)
	assert.Equal(t, "pink", BadgeColor(modern, 3).Name)
	assert.Equal(t, "blue", BadgeColor(modern, 4).Name)
	assert.Equal(t, "purple", BadgeColor(modern, 5).Name)
}

func TestHeadings(t *testing.T) {
	assert.Equal(t, "Engineer at Acme", WorkHeading(&types.WorkExperience{JobTitle: "Engineer", Employer: "Acme"}))
	assert.Equal(t, "Acme", WorkHeading(&types.WorkExperience{Employer: "Acme"}))
	assert.Equal(t, "Engine (1843)", ProjectHeading(&types.Project{Title: "Engine", Year: strPtr("1843")}))
	assert.Equal(t, "Engine", ProjectHeading(&types.Project{Title: "Engine"}))
	assert.Equal(t, "BSc — MIT", EducationHeading(&types.Education{Degree: "BSc", Institution: "MIT"}))
}

func TestCompose_FullDocument(t *testing.T) {
	page := Compose(fullDocument(), mustLookup(t, "modern"))

	assert.Equal(t, "modern", page.Template)
	assert.Equal(t, "Ada Lovelace", page.Name)
	assert.Equal(t, "Ada Lovelace | Portfolio", page.Title)
	assert.Equal(t, SectionKinds(), page.Kinds())

	skills, ok := page.Section(SectionSkills)
	require.True(t, ok)
	assert.Equal(t, "Skills & Technologies", skills.Heading)
	assert.Equal(t, "blue", skills.Badges[4].Color.Name)

	work, _ := page.Section(SectionWorkExperience)
	assert.Equal(t, "2020 – Present", work.Entries[0].Dates)
	assert.Equal(t, "2019 – 2020", work.Entries[1].Dates)

	projects, _ := page.Section(SectionProjects)
	assert.Equal(t, []Detail{{Label: "Tech Stack", Value: "Brass"}}, projects.Entries[0].Details)
	assert.Empty(t, projects.Entries[1].Details)
	assert.Empty(t, projects.Entries[1].Dates)

	education, _ := page.Section(SectionEducation)
	assert.Equal(t, "Mathematics — London", education.Entries[0].Heading)
	assert.Equal(t, []Detail{{Label: "Major", Value: "Analysis"}}, education.Entries[0].Details)
}

func TestCompose_EmptySectionsOmitted(t *testing.T) {
	doc := types.ResumeDocument{
		Bio:            "   ",
		Skills:         []string{},
		WorkExperience: []*types.WorkExperience{},
		Projects:       []*types.Project{},
		Education:      []*types.Education{{Institution: "MIT", Degree: "BSc", StartDate: "2010"}},
	}

	for _, name := range Names() {
		page := Compose(doc, mustLookup(t, name))
		assert.Equal(t, []SectionKind{SectionEducation}, page.Kinds(), name)
		assert.Empty(t, page.Name)
		assert.Equal(t, "Portfolio", page.Title)
		assert.Empty(t, page.Contacts)
	}
}

func TestCompose_SameDecisionsAcrossTemplates(t *testing.T) {
	doc := fullDocument()
	doc.Projects = []*types.Project{}

	minimal := Compose(doc, mustLookup(t, "minimal"))
	modern := Compose(doc, mustLookup(t, "modern"))
	assert.Equal(t, minimal.Kinds(), modern.Kinds())
}

func TestSection_Lines(t *testing.T) {
	page := Compose(fullDocument(), mustLookup(t, "minimal"))

	projects, ok := page.Section(SectionProjects)
	require.True(t, ok)
	assert.Equal(t, []string{"Engine (1843)", "Tech Stack: Brass", "Notes.", "Loom"}, projects.Lines())

	contact, _ := page.Section(SectionContact)
	assert.Equal(t, []string{"ada@example.com", "555 0100", "London"}, contact.Lines())
}
