package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// Frame is one rendering of a document in the terminal
type Frame struct {
	Template string
	Title    string
	Name     string
	Contacts []string
	Sections []FrameSection

	styles Styles
}

// FrameSection is one included section with its visible text lines
type FrameSection struct {
	Kind    templates.SectionKind
	Heading string
	Lines   []string

	section templates.Section
}

// Render composes doc under def. It keeps nothing between calls.
func Render(doc *types.ResumeDocument, def *templates.Definition) (Frame, error) {
	if doc == nil {
		return Frame{}, ErrMissingDocument
	}

	page := templates.Compose(*doc, def)
	frame := Frame{
		Template: page.Template,
		Title:    page.Title,
		Name:     page.Name,
		styles:   NewStyles(def),
	}
	for _, c := range page.Contacts {
		frame.Contacts = append(frame.Contacts, c.Text)
	}
	for _, s := range page.Sections {
		frame.Sections = append(frame.Sections, FrameSection{
			Kind:    s.Kind,
			Heading: s.Heading,
			Lines:   s.Lines(),
			section: s,
		})
	}
	return frame, nil
}

// Kinds returns the included section kinds in order
func (f Frame) Kinds() []templates.SectionKind {
	kinds := make([]templates.SectionKind, len(f.Sections))
	for i, s := range f.Sections {
		kinds[i] = s.Kind
	}
	return kinds
}

// View renders the frame, wrapping prose at width (0 = no wrapping)
func (f Frame) View(width int) string {
	st := f.styles
	wrap := func(style lipgloss.Style, text string) string {
		if width > 0 {
			style = style.Width(width)
		}
		return style.Render(text)
	}

	var b strings.Builder
	if f.Name != "" {
		b.WriteString(st.Name.Render(f.Name))
		b.WriteString("\n")
	}
	if len(f.Contacts) > 0 {
		b.WriteString(wrap(st.Contact, strings.Join(f.Contacts, " · ")))
		b.WriteString("\n")
	}

	for _, s := range f.Sections {
		b.WriteString(st.Heading.Render(s.Heading))
		b.WriteString("\n")

		sec := s.section
		if sec.Paragraph != "" {
			b.WriteString(wrap(st.Text, sec.Paragraph))
			b.WriteString("\n")
		}
		if len(sec.Badges) > 0 {
			badges := make([]string, len(sec.Badges))
			for i, badge := range sec.Badges {
				badges[i] = st.Badge(badge.Color).Render(badge.Text)
			}
			b.WriteString(wrap(lipgloss.NewStyle(), strings.Join(badges, " ")))
			b.WriteString("\n")
		}
		for _, e := range sec.Entries {
			if e.Heading != "" {
				b.WriteString(st.EntryHeading.Render(e.Heading))
				b.WriteString("\n")
			}
			if e.Dates != "" {
				b.WriteString(st.Muted.Render(e.Dates))
				b.WriteString("\n")
			}
			for _, d := range e.Details {
				b.WriteString(st.Muted.Render(d.Label+":") + " " + st.Text.Render(d.Value))
				b.WriteString("\n")
			}
			if e.Description != "" {
				b.WriteString(wrap(st.Text, e.Description))
				b.WriteString("\n")
			}
		}
		for _, c := range sec.Contacts {
			b.WriteString(st.Text.Render(c.Text))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (f Frame) String() string {
	return f.View(0)
}
