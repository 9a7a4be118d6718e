package editor

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/portfolio-builder/internal/templates"
)

// Styles holds the lipgloss styles derived from one template definition
type Styles struct {
	Name         lipgloss.Style
	Contact      lipgloss.Style
	Heading      lipgloss.Style
	Text         lipgloss.Style
	Muted        lipgloss.Style
	EntryHeading lipgloss.Style
	Cursor       lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	Pane         lipgloss.Style
}

// NewStyles builds the terminal styles for def
func NewStyles(def *templates.Definition) Styles {
	accent := lipgloss.Color(def.Theme.Accent)
	text := lipgloss.Color(def.Theme.Text)
	muted := lipgloss.Color(def.Theme.Muted)

	return Styles{
		Name:         lipgloss.NewStyle().Bold(true).Foreground(accent),
		Contact:      lipgloss.NewStyle().Foreground(muted),
		Heading:      lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1),
		Text:         lipgloss.NewStyle().Foreground(text),
		Muted:        lipgloss.NewStyle().Foreground(muted),
		EntryHeading: lipgloss.NewStyle().Bold(true).Foreground(text),
		Cursor:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		Status:       lipgloss.NewStyle().Foreground(muted).Italic(true),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		Pane:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
	}
}

// Badge styles one skill badge in its palette color
func (s Styles) Badge(c templates.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Foreground)).
		Background(lipgloss.Color(c.Terminal)).
		Padding(0, 1)
}
