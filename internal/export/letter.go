package export

import (
	"bytes"
	"html/template"
	"strings"
	"sync"

	"github.com/jonathan/portfolio-builder/internal/types"
)

const letterStyle = `*{box-sizing:border-box;margin:0;padding:0}
body{font-family:Georgia,'Times New Roman',serif;color:#1f2933;line-height:1.6}
main{max-width:42rem;margin:0 auto;padding:3rem 1.5rem}
.name{font-size:1.5rem;margin-bottom:2rem}
p{margin-bottom:1rem;white-space:pre-line}`

var (
	letterOnce sync.Once
	letterTmpl *template.Template
	letterErr  error
)

type letterData struct {
	Title      string
	Name       string
	Paragraphs []string
	Style      template.CSS
}

// RenderLetter produces a self-contained page for a generated cover letter.
// Blank lines separate paragraphs.
func RenderLetter(doc types.ResumeDocument, text string) ([]byte, error) {
	letterOnce.Do(func() {
		letterTmpl, letterErr = template.ParseFS(assetFS, "assets/letter.html.tmpl")
		if letterErr != nil {
			letterErr = &Error{Stage: StageTemplate, Message: "failed to parse letter template", Cause: letterErr}
		}
	})
	if letterErr != nil {
		return nil, letterErr
	}

	name := strings.TrimSpace(types.Deref(doc.Personal.Name))
	data := letterData{
		Title: "Cover Letter",
		Name:  name,
		Style: template.CSS(letterStyle),
	}
	if name != "" {
		data.Title = name + " - Cover Letter"
	}
	for _, p := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			data.Paragraphs = append(data.Paragraphs, p)
		}
	}

	var out bytes.Buffer
	if err := letterTmpl.Execute(&out, data); err != nil {
		return nil, &Error{Stage: StageTemplate, Message: "failed to execute letter template", Cause: err}
	}
	return out.Bytes(), nil
}

// LetterFilename derives the cover letter download name from personal.name
func LetterFilename(doc types.ResumeDocument, ext string) string {
	return baseName(doc) + "-cover-letter." + ext
}
