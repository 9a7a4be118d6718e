package augment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/portfolio"
)

// Kind names the field family a generation writes to
type Kind string

const (
	// KindBio targets the document bio
	KindBio Kind = "bio"
	// KindWorkExperience targets the description of one work experience entry
	KindWorkExperience Kind = "workExperience"
	// KindProjects targets the description of one project entry
	KindProjects Kind = "projects"
)

// Target identifies one augmentable field. Index is ignored for the bio.
type Target struct {
	Kind  Kind
	Index int
}

// Bio is the bio target
func Bio() Target {
	return Target{Kind: KindBio}
}

// WorkExperience targets the description of work experience entry i
func WorkExperience(i int) Target {
	return Target{Kind: KindWorkExperience, Index: i}
}

// Project targets the description of project entry i
func Project(i int) Target {
	return Target{Kind: KindProjects, Index: i}
}

func (t Target) String() string {
	switch t.Kind {
	case KindBio:
		return "bio"
	case KindWorkExperience:
		return fmt.Sprintf("workExperience[%d]", t.Index)
	case KindProjects:
		return fmt.Sprintf("project[%d]", t.Index)
	default:
		return fmt.Sprintf("%s[%d]", t.Kind, t.Index)
	}
}

// List returns the document list the target points into
func (t Target) List() (portfolio.List, bool) {
	switch t.Kind {
	case KindWorkExperience:
		return portfolio.ListWorkExperience, true
	case KindProjects:
		return portfolio.ListProjects, true
	default:
		return "", false
	}
}

// ParseTarget reads the String form of a target. "list:i" is accepted as well
// for callers that cannot send brackets, e.g. URL path segments.
func ParseTarget(value string) (Target, error) {
	s := strings.TrimSpace(value)
	if strings.EqualFold(s, "bio") {
		return Bio(), nil
	}

	var name, index string
	switch {
	case strings.HasSuffix(s, "]") && strings.Contains(s, "["):
		open := strings.LastIndex(s, "[")
		name, index = s[:open], s[open+1:len(s)-1]
	case strings.Contains(s, ":"):
		name, index, _ = strings.Cut(s, ":")
	default:
		return Target{}, &InvalidTargetError{Value: value}
	}

	i, err := strconv.Atoi(index)
	if err != nil || i < 0 {
		return Target{}, &InvalidTargetError{Value: value}
	}

	list, err := portfolio.ParseList(name)
	if err != nil {
		return Target{}, &InvalidTargetError{Value: value}
	}
	switch list {
	case portfolio.ListWorkExperience:
		return WorkExperience(i), nil
	case portfolio.ListProjects:
		return Project(i), nil
	default:
		// education has no generated description
		return Target{}, &InvalidTargetError{Value: value}
	}
}
