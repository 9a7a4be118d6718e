package templates

import (
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	// SummaryLimit is the number of characters of the bio shown in the About section
	SummaryLimit = 300
	// Ellipsis is appended to a truncated summary
	Ellipsis = "..."
	// PresentLabel stands in for an absent end date
	PresentLabel = "Present"
	// DateSeparator joins the two ends of a date range
	DateSeparator = " – "
)

// Summary derives the About text: the first SummaryLimit characters of bio, plus Ellipsis
// only when bio is longer than that. Characters are counted as runes.
func Summary(bio string) string {
	r := []rune(bio)
	if len(r) <= SummaryLimit {
		return bio
	}
	return string(r[:SummaryLimit]) + Ellipsis
}

// DateRange formats "start – end", with PresentLabel when end is absent.
// A blank start leaves only the end label.
func DateRange(start string, end *string) string {
	endLabel := PresentLabel
	if e := types.Deref(end); e != "" {
		endLabel = e
	}
	start = strings.TrimSpace(start)
	if start == "" {
		return endLabel
	}
	return start + DateSeparator + endLabel
}

// ContactKind identifies a contact line
type ContactKind string

const (
	ContactEmail    ContactKind = "email"
	ContactPhone    ContactKind = "phone"
	ContactLocation ContactKind = "location"
)

// ContactLine is one present contact field. Href is empty when the line is not a link.
type ContactLine struct {
	Kind ContactKind
	Text string
	Href string
}

// ContactLines returns the present contact fields in email, phone, location order.
// Email always links with mailto:, phone links with tel: when the template asks for it.
func ContactLines(p types.Personal, def *Definition) []ContactLine {
	var lines []ContactLine
	if email := types.Deref(p.Email); email != "" {
		lines = append(lines, ContactLine{Kind: ContactEmail, Text: email, Href: "mailto:" + email})
	}
	if phone := types.Deref(p.Phone); phone != "" {
		line := ContactLine{Kind: ContactPhone, Text: phone}
		if def.LinkPhone {
			line.Href = "tel:" + strings.ReplaceAll(phone, " ", "")
		}
		lines = append(lines, line)
	}
	if location := types.Deref(p.Location); location != "" {
		lines = append(lines, ContactLine{Kind: ContactLocation, Text: location})
	}
	return lines
}

// BadgeColor returns the palette color for the skill at index (index mod palette size)
func BadgeColor(def *Definition, index int) Color {
	n := len(def.Palette)
	return def.Palette[((index%n)+n)%n]
}

// joinPresent joins the non-blank parts with sep
func joinPresent(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// WorkHeading formats "job_title at employer"
func WorkHeading(w *types.WorkExperience) string {
	return joinPresent(" at ", w.JobTitle, w.Employer)
}

// ProjectHeading formats "title (year)", dropping the year when absent
func ProjectHeading(p *types.Project) string {
	if year := types.Deref(p.Year); year != "" {
		return joinPresent(" ", p.Title, "("+year+")")
	}
	return strings.TrimSpace(p.Title)
}

// EducationHeading formats "degree — institution"
func EducationHeading(e *types.Education) string {
	return joinPresent(" — ", e.Degree, e.Institution)
}

// PageTitle is the document title: "<name> | <suffix>", or the suffix alone
func PageTitle(p types.Personal, def *Definition) string {
	return joinPresent(" | ", types.Deref(p.Name), def.TitleSuffix)
}
