package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleDocument() types.ResumeDocument {
	return types.ResumeDocument{
		Personal: types.Personal{
			Name:  strPtr("Ada Lovelace"),
			Email: strPtr("ada@example.com"),
			Phone: strPtr("020 7946 0000"),
		},
		Bio:    strings.Repeat("Poetical science. ", 20),
		Skills: []string{"Go", "Python", "SQL", "Rust", "Docker"},
		WorkExperience: []*types.WorkExperience{
			{ID: "w1", JobTitle: "Engineer", Employer: "Acme & Sons", StartDate: "2020", Description: "Built <engines>."},
		},
		Projects:  []*types.Project{},
		Education: []*types.Education{{ID: "e1", Institution: "London", Degree: "Mathematics", StartDate: "1840", EndDate: strPtr("1842"), GPA: strPtr("4.0")}},
	}
}

func TestRender_Idempotent(t *testing.T) {
	doc := sampleDocument()

	for _, name := range templates.Names() {
		first, err := Render(doc, name)
		require.NoError(t, err)
		second, err := Render(doc, name)
		require.NoError(t, err)
		assert.Equal(t, first, second, name)
	}
}

func TestRender_SnapshotUnaffectedByLaterMutation(t *testing.T) {
	snapshot := sampleDocument()
	before, err := Render(snapshot, "modern")
	require.NoError(t, err)

	_, err = portfolio.SetEntryField(snapshot, portfolio.ListWorkExperience, 0, "employer", "Someone Else")
	require.NoError(t, err)
	portfolio.SetBio(snapshot, "changed")

	after, err := Render(snapshot, "modern")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRender_SelfContained(t *testing.T) {
	out, err := Render(sampleDocument(), "modern")
	require.NoError(t, err)
	html := string(out)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<style>")
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "<link")
	assert.NotContains(t, html, "http://")
	assert.NotContains(t, html, "https://")
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestRender_EscapesContent(t *testing.T) {
	out, err := Render(sampleDocument(), "minimal")
	require.NoError(t, err)

	assert.Contains(t, string(out), "Acme &amp; Sons")
	assert.Contains(t, string(out), "Built &lt;engines&gt;.")
}

func TestRender_Links(t *testing.T) {
	modern, err := Render(sampleDocument(), "modern")
	require.NoError(t, err)
	assert.Contains(t, string(modern), `href="mailto:ada@example.com"`)
	assert.Contains(t, string(modern), `href="tel:02079460000"`)

	minimal, err := Render(sampleDocument(), "minimal")
	require.NoError(t, err)
	assert.Contains(t, string(minimal), `href="mailto:ada@example.com"`)
	assert.NotContains(t, string(minimal), "tel:")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(sampleDocument(), "brutalist")
	require.Error(t, err)
	assert.True(t, templates.IsUnknownTemplate(err))
}

func TestRender_PaletteClasses(t *testing.T) {
	out, err := Render(sampleDocument(), "modern")
	require.NoError(t, err)
	html := string(out)

	for _, color := range []string{"blue", "purple", "green", "pink"} {
		assert.Contains(t, html, ".badge-"+color+"{")
	}
	assert.Equal(t, 2, strings.Count(html, `class="line badge badge-blue"`), "Go and Docker share the first color")
}

func TestInspect_MatchesComposition(t *testing.T) {
	doc := sampleDocument()

	for _, name := range templates.Names() {
		def, err := templates.Lookup(name)
		require.NoError(t, err)
		page := templates.Compose(doc, def)

		out, err := Render(doc, name)
		require.NoError(t, err)
		outline, err := Inspect(out)
		require.NoError(t, err)

		assert.Equal(t, page.Title, outline.Title)
		assert.Equal(t, page.Name, outline.Name)
		require.Len(t, outline.Sections, len(page.Sections), name)
		for i, section := range page.Sections {
			assert.Equal(t, string(section.Kind), outline.Sections[i].Kind)
			assert.Equal(t, section.Heading, outline.Sections[i].Heading)
			assert.Equal(t, section.Lines(), outline.Sections[i].Lines, "%s/%s", name, section.Kind)
		}
	}
}

func TestInspect_OmitsEmptySectionsAndName(t *testing.T) {
	doc := types.ResumeDocument{
		Skills:         []string{"Go"},
		WorkExperience: []*types.WorkExperience{},
		Projects:       []*types.Project{},
		Education:      []*types.Education{},
	}

	out, err := Render(doc, "minimal")
	require.NoError(t, err)
	outline, err := Inspect(out)
	require.NoError(t, err)

	assert.Equal(t, []string{"skills"}, outline.Kinds())
	assert.Empty(t, outline.Name)
	assert.NotContains(t, string(out), "<header")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Ada Lovelace-portfolio.html", Filename(sampleDocument()))
	assert.Equal(t, "portfolio-portfolio.html", Filename(types.ResumeDocument{}))
	assert.Equal(t, "portfolio-portfolio.html", Filename(types.ResumeDocument{Personal: types.Personal{Name: strPtr("  ")}}))
	assert.Equal(t, "a-b-c-portfolio.pdf", PDFFilename(types.ResumeDocument{Personal: types.Personal{Name: strPtr("a/b:c")}}))
}

func TestFileSink_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := FileSink{Dir: dir}

	path, err := sink.Save(context.Background(), "../escape-portfolio.html", []byte("<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape-portfolio.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}

func TestFileSink_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FileSink{Dir: t.TempDir()}.Save(ctx, "x.html", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderLetter(t *testing.T) {
	out, err := RenderLetter(sampleDocument(), "Dear Hiring Manager,\n\nI build <engines>.\r\n\r\nRegards")
	require.NoError(t, err)

	html := string(out)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Ada Lovelace - Cover Letter</title>")
	assert.Contains(t, html, "<p>Dear Hiring Manager,</p>")
	assert.Contains(t, html, "<p>I build &lt;engines&gt;.</p>")
	assert.Contains(t, html, "<p>Regards</p>")
	assert.NotContains(t, html, "<script")

	anonymous, err := RenderLetter(types.ResumeDocument{}, "Hello")
	require.NoError(t, err)
	assert.Contains(t, string(anonymous), "<title>Cover Letter</title>")
	assert.NotContains(t, string(anonymous), `class="name"`)
}

func TestLetterFilename(t *testing.T) {
	assert.Equal(t, "Ada Lovelace-cover-letter.pdf", LetterFilename(sampleDocument(), "pdf"))
	assert.Equal(t, "portfolio-cover-letter.md", LetterFilename(types.ResumeDocument{}, "md"))
}

func TestError(t *testing.T) {
	cause := os.ErrPermission
	err := &Error{Stage: StageWrite, Message: "failed to write out.html", Cause: cause}

	assert.Equal(t, "export write: failed to write out.html: permission denied", err.Error())
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "export print: no browser", (&Error{Stage: StagePrint, Message: "no browser"}).Error())
}
