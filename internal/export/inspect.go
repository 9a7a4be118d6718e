package export

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Outline is the visible structure read back out of an exported page
type Outline struct {
	Title    string           `json:"title"`
	Name     string           `json:"name,omitempty"`
	Sections []OutlineSection `json:"sections"`
}

// OutlineSection is one exported section with its text lines in document order
type OutlineSection struct {
	Kind    string   `json:"kind"`
	Heading string   `json:"heading"`
	Lines   []string `json:"lines"`
}

// Kinds returns the section kinds in page order
func (o Outline) Kinds() []string {
	kinds := make([]string, len(o.Sections))
	for i, s := range o.Sections {
		kinds[i] = s.Kind
	}
	return kinds
}

// Inspect parses an exported page
func Inspect(html []byte) (*Outline, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, &Error{Stage: StageInspect, Message: "failed to parse exported HTML", Cause: err}
	}

	outline := &Outline{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Name:  strings.TrimSpace(doc.Find("header .name").First().Text()),
	}

	doc.Find("section[data-section]").Each(func(_ int, s *goquery.Selection) {
		kind, _ := s.Attr("data-section")
		section := OutlineSection{
			Kind:    kind,
			Heading: strings.TrimSpace(s.Find(".heading").First().Text()),
			Lines:   []string{},
		}
		s.Find(".line").Each(func(_ int, line *goquery.Selection) {
			if text := strings.TrimSpace(line.Text()); text != "" {
				section.Lines = append(section.Lines, text)
			}
		})
		outline.Sections = append(outline.Sections, section)
	})

	return outline, nil
}
