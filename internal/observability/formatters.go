// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most width runes
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// PrintDocument outputs a summary of a parsed or edited document
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(doc.Personal.Name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(doc.Personal.Email)))
	sb.WriteString(fmt.Sprintf("Location: %s\n", orDash(doc.Personal.Location)))
	sb.WriteString(fmt.Sprintf("Bio:      %d chars\n", utf8.RuneCountInString(doc.Bio)))
	sb.WriteString("\n")

	if len(doc.Skills) > 0 {
		count := min(len(doc.Skills), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("Skills: %s", strings.Join(doc.Skills[:count], ", ")))
		if len(doc.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" (+%d)", len(doc.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n\n")
	}

	if len(doc.WorkExperience) > 0 {
		sb.WriteString("Work Experience:\n")
		count := min(len(doc.WorkExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			w := doc.WorkExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s at %s\n", w.JobTitle, w.Employer))
		}
		if len(doc.WorkExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.WorkExperience)-maxItemsToShow))
		}
	}

	sb.WriteString(fmt.Sprintf("Projects: %d   Education: %d", len(doc.Projects), len(doc.Education)))

	p.printBox("PORTFOLIO DOCUMENT", sb.String())
}

// PrintGeneration outputs the result of a description or bio generation
func (p *Printer) PrintGeneration(target string, text string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target: %s\n\n", target))
	sb.WriteString(wrap(text, boxWidth-4))
	p.printBox("GENERATED TEXT", sb.String())
}

// PrintExport outputs where an export was written and which sections it contains
func (p *Printer) PrintExport(path string, size int, sections []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", path))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes\n", size))
	if len(sections) == 0 {
		sb.WriteString("Sections: none")
	} else {
		sb.WriteString(fmt.Sprintf("Sections: %s", strings.Join(sections, ", ")))
	}
	p.printBox("EXPORTED PORTFOLIO", sb.String())
}

func orDash(v *string) string {
	if s := types.Deref(v); s != "" {
		return s
	}
	return "-"
}

// wrap breaks text on word boundaries so each line fits width runes
func wrap(text string, width int) string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var line string
		for _, word := range strings.Fields(paragraph) {
			switch {
			case line == "":
				line = word
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width:
				lines = append(lines, line)
				line = word
			default:
				line += " " + word
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
