package export

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/jonathan/portfolio-builder/internal/types"
)

//go:embed assets/page.html.tmpl assets/style.css.tmpl assets/letter.html.tmpl
var assetFS embed.FS

var (
	parseOnce sync.Once
	pageTmpl  *template.Template
	styleTmpl *texttemplate.Template
	parseErr  error
)

func parseAssets() (*template.Template, *texttemplate.Template, error) {
	parseOnce.Do(func() {
		pageTmpl, parseErr = template.New("page.html.tmpl").
			Funcs(template.FuncMap{"href": href}).
			ParseFS(assetFS, "assets/page.html.tmpl")
		if parseErr != nil {
			parseErr = &Error{Stage: StageTemplate, Message: "failed to parse page template", Cause: parseErr}
			return
		}
		styleTmpl, parseErr = texttemplate.ParseFS(assetFS, "assets/style.css.tmpl")
		if parseErr != nil {
			parseErr = &Error{Stage: StageTemplate, Message: "failed to parse stylesheet", Cause: parseErr}
		}
	})
	return pageTmpl, styleTmpl, parseErr
}

// href passes through the link schemes Compose produces and leaves anything else to
// html/template's URL filtering
func href(raw string) any {
	if strings.HasPrefix(raw, "mailto:") || strings.HasPrefix(raw, "tel:") {
		return template.URL(raw)
	}
	return raw
}

type pageData struct {
	Page  templates.Page
	Style template.CSS
}

// Render produces the export artifact for snapshot under the named template.
// The output depends only on its arguments: equal inputs give byte-identical HTML.
func Render(snapshot types.ResumeDocument, templateName string) ([]byte, error) {
	def, err := templates.Lookup(templateName)
	if err != nil {
		return nil, err
	}
	return RenderDefinition(snapshot, def)
}

// RenderDefinition is Render for an already resolved definition
func RenderDefinition(snapshot types.ResumeDocument, def *templates.Definition) ([]byte, error) {
	page, style, err := parseAssets()
	if err != nil {
		return nil, err
	}

	var css bytes.Buffer
	if err := style.Execute(&css, def); err != nil {
		return nil, &Error{Stage: StageTemplate, Message: "failed to execute stylesheet", Cause: err}
	}

	data := pageData{
		Page:  templates.Compose(snapshot, def),
		Style: template.CSS(css.String()),
	}

	var out bytes.Buffer
	if err := page.Execute(&out, data); err != nil {
		return nil, &Error{Stage: StageTemplate, Message: "failed to execute page template", Cause: err}
	}
	return out.Bytes(), nil
}
