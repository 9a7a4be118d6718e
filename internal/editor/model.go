package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/portfolio-builder/internal/augment"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// GeneratingLabel replaces the trigger hint of a pending field
const GeneratingLabel = "Generating..."

const helpLine = "↑/↓ move · enter edit · g generate · a/x add/remove skill · n/D add/remove entry · e export · s save · q quit"

// DocumentChangedMsg tells the model the session document changed outside of it
type DocumentChangedMsg struct{}

// GenerationDoneMsg reports a finished generation
type GenerationDoneMsg struct {
	Target augment.Target
	Err    error
}

type exportDoneMsg struct {
	path string
	err  error
}

type saveDoneMsg struct {
	path string
	err  error
}

type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modeAddSkill
)

// Model is the bubbletea editing surface
type Model struct {
	cb     Callbacks
	def    *templates.Definition
	styles Styles

	doc    *types.ResumeDocument
	frame  Frame
	fields []Field
	cursor int

	mode    mode
	editing Field
	input   textinput.Model
	area    textarea.Model
	preview viewport.Model

	width  int
	height int
	status string
	failed bool
}

// New creates a model over the callbacks' document
func New(def *templates.Definition, cb Callbacks) (Model, error) {
	if cb.Document == nil || cb.Document() == nil {
		return Model{}, ErrMissingDocument
	}

	m := Model{
		cb:      cb,
		def:     def,
		styles:  NewStyles(def),
		input:   textinput.New(),
		area:    textarea.New(),
		preview: viewport.New(60, 24),
	}
	m.resize(100, 30)
	m.refresh()
	return m, nil
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Frame returns the current preview frame
func (m Model) Frame() Frame {
	return m.frame
}

// Status returns the last status message
func (m Model) Status() string {
	return m.status
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case DocumentChangedMsg:
		m.refresh()
		return m, nil

	case GenerationDoneMsg:
		if msg.Err != nil {
			m.setError(fmt.Sprintf("Generation for %s failed: %v (press g to retry)", msg.Target, msg.Err))
		} else {
			m.setStatus(fmt.Sprintf("Generated %s", msg.Target))
		}
		m.refresh()
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Export failed: %v", msg.err))
		} else {
			m.setStatus("Exported to " + msg.path)
		}
		return m, nil

	case saveDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Save failed: %v", msg.err))
		} else {
			m.setStatus("Saved to " + msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateEditing(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	case "enter":
		return m.startEditing()
	case "g":
		m.generate()
	case "a":
		m.mode = modeAddSkill
		m.input.Reset()
		m.input.Placeholder = "New skill"
		return m, m.input.Focus()
	case "x":
		if f, ok := m.focused(); ok && f.Kind == FieldSkill {
			m.cb.RemoveSkill(f.Index)
			m.setStatus("Removed skill " + f.Value)
		}
	case "n":
		if f, ok := m.focused(); ok && (f.Kind == FieldEntry || f.Kind == FieldAddEntry) {
			m.appendEntry(f.List)
		}
	case "D":
		if f, ok := m.focused(); ok && f.Kind == FieldEntry {
			if err := m.cb.RemoveEntry(f.List, f.Index); err != nil {
				m.setError(err.Error())
			} else {
				m.setStatus(fmt.Sprintf("Removed %s[%d]", f.List, f.Index))
			}
		}
	case "e":
		export := m.cb.Export
		m.setStatus("Exporting...")
		return m, func() tea.Msg {
			path, err := export()
			return exportDoneMsg{path: path, err: err}
		}
	case "s":
		save := m.cb.Save
		if save == nil {
			m.setError("saving is not configured")
			return m, nil
		}
		m.setStatus("Saving...")
		return m, func() tea.Msg {
			path, err := save()
			return saveDoneMsg{path: path, err: err}
		}
	}

	m.refresh()
	return m, nil
}

func (m Model) startEditing() (tea.Model, tea.Cmd) {
	f, ok := m.focused()
	if !ok {
		return m, nil
	}
	if f.Kind == FieldSkill {
		m.setStatus("Skills are added with a and removed with x")
		return m, nil
	}
	if f.Kind == FieldAddEntry {
		m.appendEntry(f.List)
		m.refresh()
		return m, nil
	}

	m.mode = modeEdit
	m.editing = f
	if f.Multiline() {
		m.area.SetValue(f.Value)
		return m, m.area.Focus()
	}
	m.input.Placeholder = f.Label()
	m.input.SetValue(f.Value)
	return m, m.input.Focus()
}

func (m *Model) appendEntry(list portfolio.List) {
	if _, err := m.cb.AppendEntry(list); err != nil {
		m.setError(err.Error())
	} else {
		m.setStatus(fmt.Sprintf("Added %s entry", list))
	}
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	multiline := m.mode == modeEdit && m.editing.Multiline()

	switch msg.String() {
	case "esc":
		m.stopEditing()
		m.setStatus("Edit cancelled")
		return m, nil
	case "ctrl+s":
		if multiline {
			m.commit(m.area.Value())
			return m, nil
		}
	case "enter":
		if !multiline {
			m.commit(m.input.Value())
			return m, nil
		}
	}

	var cmd tea.Cmd
	if multiline {
		m.area, cmd = m.area.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// commit sends the edited value through the matching callback
func (m *Model) commit(value string) {
	f := m.editing
	adding := m.mode == modeAddSkill
	m.stopEditing()

	var err error
	switch {
	case adding:
		if !m.cb.AddSkill(value) {
			m.setStatus("Skill is empty or already listed")
		} else {
			m.setStatus("Added skill " + strings.TrimSpace(value))
		}
	case f.Kind == FieldPersonal:
		err = m.cb.SetPersonalField(f.Key, value)
	case f.Kind == FieldBio:
		m.cb.SetBio(value)
	case f.Kind == FieldEntry:
		err = m.cb.SetEntryField(f.List, f.Index, f.Key, value)
	}
	if err != nil {
		m.setError(err.Error())
	} else if !adding {
		m.setStatus("Saved " + f.Label())
	}
	m.refresh()
}

func (m *Model) stopEditing() {
	m.mode = modeBrowse
	m.input.Blur()
	m.area.Blur()
}

// generate starts a generation for the focused field; pending targets ignore the trigger
func (m *Model) generate() {
	f, ok := m.focused()
	if !ok {
		return
	}
	target, ok := f.Target()
	if !ok {
		m.setStatus("Generation is available for the bio and descriptions")
		return
	}
	if m.cb.Pending(target) {
		return
	}

	err := m.cb.Generate(target)
	switch {
	case errors.Is(err, augment.ErrGenerationAlreadyInFlight):
	case err != nil:
		m.setError(err.Error())
	default:
		m.setStatus("Generating " + target.String())
	}
}

func (m Model) focused() (Field, bool) {
	if m.cursor < 0 || m.cursor >= len(m.fields) {
		return Field{}, false
	}
	return m.fields[m.cursor], true
}

// refresh re-reads the document and rebuilds the form and preview
func (m *Model) refresh() {
	doc := m.cb.Document()
	if doc == nil {
		m.setError(ErrMissingDocument.Error())
		return
	}

	frame, err := Render(doc, m.def)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.doc = doc
	m.frame = frame
	m.fields = Fields(*doc)
	m.cursor = max(0, min(m.cursor, len(m.fields)-1))
	m.preview.SetContent(frame.View(m.preview.Width))
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	formWidth := width * 2 / 5
	m.preview.Width = max(20, width-formWidth-4)
	m.preview.Height = max(5, height-4)
	m.input.Width = max(10, formWidth-4)
	m.area.SetWidth(max(10, formWidth-4))
	m.area.SetHeight(5)
}

func (m *Model) setStatus(s string) {
	m.status, m.failed = s, false
}

func (m *Model) setError(s string) {
	m.status, m.failed = s, true
}

// View implements tea.Model
func (m Model) View() string {
	formWidth := m.width * 2 / 5
	form := m.formView(formWidth, m.height-4)
	if m.mode != modeBrowse {
		label := "new skill"
		editor := m.input.View()
		if m.mode == modeEdit {
			label = m.editing.Label()
			if m.editing.Multiline() {
				editor = m.area.View()
				label += " (ctrl+s save, esc cancel)"
			}
		}
		form += "\n" + m.styles.Cursor.Render(label) + "\n" + editor
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Pane.Width(formWidth).Render(form),
		m.styles.Pane.Render(m.preview.View()),
	)

	status := m.styles.Status.Render(m.status)
	if m.failed {
		status = m.styles.Error.Render(m.status)
	}
	return body + "\n" + status + "\n" + m.styles.Muted.Render(helpLine)
}

func (m Model) formView(width, height int) string {
	start := 0
	if height > 0 && m.cursor >= height {
		start = m.cursor - height + 1
	}

	var b strings.Builder
	for i := start; i < len(m.fields); i++ {
		if height > 0 && i-start >= height {
			break
		}
		f := m.fields[i]
		line := f.Label() + ": " + preview(f.Value, max(10, width-len(f.Label())-8))
		if f.Kind == FieldAddEntry {
			line = f.Label()
		}
		if target, ok := f.Target(); ok && m.cb.Pending(target) {
			line = f.Label() + ": " + GeneratingLabel
		}
		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
