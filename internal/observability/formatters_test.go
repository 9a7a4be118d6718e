package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func strPtr(s string) *string { return &s }

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &types.ResumeDocument{
		Personal: types.Personal{Name: strPtr("Ada Lovelace")},
		Bio:      "Analyst",
		Skills:   []string{"Go", "Python", "SQL", "Rust", "Docker", "Kubernetes"},
		WorkExperience: []*types.WorkExperience{
			{JobTitle: "Engineer", Employer: "Acme"},
		},
	}

	p.PrintDocument(doc)
	output := buf.String()

	assert.Contains(t, output, "PORTFOLIO DOCUMENT")
	assert.Contains(t, output, "Ada Lovelace")
	assert.Contains(t, output, "Email:    -")
	assert.Contains(t, output, "(+1)")
	assert.Contains(t, output, "Engineer at Acme")
	assert.Contains(t, output, "Projects: 0")
}

func TestPrintDocument_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument(nil)
	assert.Empty(t, buf.String())
}

func TestPrintGeneration_WrapsLongText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGeneration("workExperience[0]", strings.Repeat("word ", 40))
	output := buf.String()

	assert.Contains(t, output, "GENERATED TEXT")
	assert.Contains(t, output, "workExperience[0]")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}

func TestPrintExport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExport("out/ada-portfolio.html", 2048, []string{"About", "Skills"})
	assert.Contains(t, buf.String(), "ada-portfolio.html")
	assert.Contains(t, buf.String(), "About, Skills")

	buf.Reset()
	p.PrintExport("x.html", 10, nil)
	assert.Contains(t, buf.String(), "Sections: none")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcdefg...", clip("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", clip(strings.Repeat("é", 20), 10))
}

func TestDocumentFields(t *testing.T) {
	doc := types.ResumeDocument{Bio: "héllo", Skills: []string{"Go"}}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range DocumentFields(doc) {
		f.AddTo(enc)
	}

	assert.Equal(t, false, enc.Fields["has_name"])
	assert.Equal(t, int64(5), enc.Fields["bio_chars"])
	assert.Equal(t, int64(1), enc.Fields["skills"])
	assert.Equal(t, int64(0), enc.Fields["projects"])
}
