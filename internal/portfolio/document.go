package portfolio

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// List names one of the three structured lists of a document
type List string

const (
	// ListWorkExperience is the work experience list
	ListWorkExperience List = "workExperience"
	// ListProjects is the projects list
	ListProjects List = "projects"
	// ListEducation is the education list
	ListEducation List = "education"
)

// Lists returns the structured lists in display order
func Lists() []List {
	return []List{ListWorkExperience, ListProjects, ListEducation}
}

// ParseList accepts both the camelCase and the wire (snake_case) spelling of a list name
func ParseList(name string) (List, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(name, "_", ""), "-", "")) {
	case "workexperience":
		return ListWorkExperience, nil
	case "projects", "project":
		return ListProjects, nil
	case "education":
		return ListEducation, nil
	default:
		return "", &UnknownListError{List: name}
	}
}

// Personal field keys
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldLocation = "location"
)

// FieldDescription is the augmentable text field shared by work experience and project entries
const FieldDescription = "description"

// SetPersonalField replaces one key under personal. A blank value clears the field.
func SetPersonalField(doc types.ResumeDocument, key, value string) (types.ResumeDocument, error) {
	switch key {
	case FieldName:
		doc.Personal.Name = types.Opt(value)
	case FieldEmail:
		doc.Personal.Email = types.Opt(value)
	case FieldPhone:
		doc.Personal.Phone = types.Opt(value)
	case FieldLocation:
		doc.Personal.Location = types.Opt(value)
	default:
		return doc, &UnknownFieldError{Target: "personal", Field: key}
	}
	return doc, nil
}

// SetBio replaces the bio wholesale
func SetBio(doc types.ResumeDocument, text string) types.ResumeDocument {
	doc.Bio = text
	return doc
}

// AddSkill appends a trimmed skill. It reports false and returns the document unchanged when the
// trimmed value is empty or already present under case-insensitive comparison.
func AddSkill(doc types.ResumeDocument, text string) (types.ResumeDocument, bool) {
	skill := strings.TrimSpace(text)
	if skill == "" || HasSkill(doc, skill) {
		return doc, false
	}

	skills := make([]string, len(doc.Skills), len(doc.Skills)+1)
	copy(skills, doc.Skills)
	doc.Skills = append(skills, skill)
	return doc, true
}

// HasSkill reports whether skill is present, ignoring case and surrounding whitespace
func HasSkill(doc types.ResumeDocument, skill string) bool {
	key := foldSkill(strings.TrimSpace(skill))
	for _, existing := range doc.Skills {
		if foldSkill(existing) == key {
			return true
		}
	}
	return false
}

// RemoveSkill drops the skill at index. Out-of-range indexes are a silent no-op.
func RemoveSkill(doc types.ResumeDocument, index int) (types.ResumeDocument, bool) {
	if index < 0 || index >= len(doc.Skills) {
		return doc, false
	}

	skills := make([]string, 0, len(doc.Skills)-1)
	skills = append(skills, doc.Skills[:index]...)
	doc.Skills = append(skills, doc.Skills[index+1:]...)
	return doc, true
}

// SetEntryField replaces one field of one entry. Only the targeted entry is copied; sibling
// entries and the other lists are shared with the input document.
func SetEntryField(doc types.ResumeDocument, list List, index int, field, value string) (types.ResumeDocument, error) {
	var err error
	switch list {
	case ListWorkExperience:
		doc.WorkExperience, err = replaceAt(doc.WorkExperience, string(list), index, func(e types.WorkExperience) (types.WorkExperience, error) {
			return setWorkField(e, field, value)
		})
	case ListProjects:
		doc.Projects, err = replaceAt(doc.Projects, string(list), index, func(p types.Project) (types.Project, error) {
			return setProjectField(p, field, value)
		})
	case ListEducation:
		doc.Education, err = replaceAt(doc.Education, string(list), index, func(e types.Education) (types.Education, error) {
			return setEducationField(e, field, value)
		})
	default:
		return doc, &UnknownListError{List: string(list)}
	}
	return doc, err
}

// AppendEntry adds a blank entry with a fresh id to the end of list
func AppendEntry(doc types.ResumeDocument, list List) (types.ResumeDocument, string, error) {
	id := uuid.NewString()
	switch list {
	case ListWorkExperience:
		doc.WorkExperience = appendCopy(doc.WorkExperience, &types.WorkExperience{ID: id})
	case ListProjects:
		doc.Projects = appendCopy(doc.Projects, &types.Project{ID: id})
	case ListEducation:
		doc.Education = appendCopy(doc.Education, &types.Education{ID: id})
	default:
		return doc, "", &UnknownListError{List: string(list)}
	}
	return doc, id, nil
}

// RemoveEntry drops the entry at index, keeping the order of the remaining entries
func RemoveEntry(doc types.ResumeDocument, list List, index int) (types.ResumeDocument, error) {
	var err error
	switch list {
	case ListWorkExperience:
		doc.WorkExperience, err = removeAt(doc.WorkExperience, string(list), index)
	case ListProjects:
		doc.Projects, err = removeAt(doc.Projects, string(list), index)
	case ListEducation:
		doc.Education, err = removeAt(doc.Education, string(list), index)
	default:
		return doc, &UnknownListError{List: string(list)}
	}
	return doc, err
}

// Len returns the number of entries in list, or -1 for an unknown list
func Len(doc types.ResumeDocument, list List) int {
	switch list {
	case ListWorkExperience:
		return len(doc.WorkExperience)
	case ListProjects:
		return len(doc.Projects)
	case ListEducation:
		return len(doc.Education)
	default:
		return -1
	}
}

// EntryID returns the stable id of the entry at index
func EntryID(doc types.ResumeDocument, list List, index int) (string, error) {
	n := Len(doc, list)
	if n < 0 {
		return "", &UnknownListError{List: string(list)}
	}
	if index < 0 || index >= n {
		return "", &IndexOutOfRangeError{List: string(list), Index: index, Length: n}
	}
	switch list {
	case ListWorkExperience:
		return doc.WorkExperience[index].ID, nil
	case ListProjects:
		return doc.Projects[index].ID, nil
	default:
		return doc.Education[index].ID, nil
	}
}

// IndexOf returns the current position of the entry with the given id, or -1 if it is gone
func IndexOf(doc types.ResumeDocument, list List, id string) int {
	for i := 0; i < Len(doc, list); i++ {
		if entryID, _ := EntryID(doc, list, i); entryID == id {
			return i
		}
	}
	return -1
}

func replaceAt[T any](items []*T, list string, index int, update func(T) (T, error)) ([]*T, error) {
	if index < 0 || index >= len(items) {
		return items, &IndexOutOfRangeError{List: list, Index: index, Length: len(items)}
	}

	updated, err := update(*items[index])
	if err != nil {
		return items, err
	}

	next := make([]*T, len(items))
	copy(next, items)
	next[index] = &updated
	return next, nil
}

func removeAt[T any](items []*T, list string, index int) ([]*T, error) {
	if index < 0 || index >= len(items) {
		return items, &IndexOutOfRangeError{List: list, Index: index, Length: len(items)}
	}

	next := make([]*T, 0, len(items)-1)
	next = append(next, items[:index]...)
	return append(next, items[index+1:]...), nil
}

func appendCopy[T any](items []*T, item *T) []*T {
	next := make([]*T, len(items), len(items)+1)
	copy(next, items)
	return append(next, item)
}

func setWorkField(e types.WorkExperience, field, value string) (types.WorkExperience, error) {
	switch field {
	case "job_title":
		e.JobTitle = value
	case "employer":
		e.Employer = value
	case "start_date":
		e.StartDate = value
	case "end_date":
		e.EndDate = types.Opt(value)
	case FieldDescription:
		e.Description = value
	default:
		return e, &UnknownFieldError{Target: string(ListWorkExperience), Field: field}
	}
	return e, nil
}

func setProjectField(p types.Project, field, value string) (types.Project, error) {
	switch field {
	case "title":
		p.Title = value
	case "year":
		p.Year = types.Opt(value)
	case "tech_stack":
		p.TechStack = types.Opt(value)
	case FieldDescription:
		p.Description = value
	default:
		return p, &UnknownFieldError{Target: string(ListProjects), Field: field}
	}
	return p, nil
}

func setEducationField(e types.Education, field, value string) (types.Education, error) {
	switch field {
	case "institution":
		e.Institution = value
	case "degree":
		e.Degree = value
	case "start_date":
		e.StartDate = value
	case "end_date":
		e.EndDate = types.Opt(value)
	case "major":
		e.Major = types.Opt(value)
	case "gpa":
		e.GPA = types.Opt(value)
	default:
		return e, &UnknownFieldError{Target: string(ListEducation), Field: field}
	}
	return e, nil
}

// EntryFields returns the editable field names of a list, in form order
func EntryFields(list List) []string {
	switch list {
	case ListWorkExperience:
		return []string{"job_title", "employer", "start_date", "end_date", FieldDescription}
	case ListProjects:
		return []string{"title", "year", "tech_stack", FieldDescription}
	case ListEducation:
		return []string{"institution", "degree", "start_date", "end_date", "major", "gpa"}
	default:
		return nil
	}
}

// PersonalFields returns the personal keys in form order
func PersonalFields() []string {
	return []string{FieldName, FieldEmail, FieldPhone, FieldLocation}
}

// PersonalField returns the current value of a personal key ("" when absent)
func PersonalField(doc types.ResumeDocument, key string) (string, error) {
	switch key {
	case FieldName:
		return types.Deref(doc.Personal.Name), nil
	case FieldEmail:
		return types.Deref(doc.Personal.Email), nil
	case FieldPhone:
		return types.Deref(doc.Personal.Phone), nil
	case FieldLocation:
		return types.Deref(doc.Personal.Location), nil
	default:
		return "", &UnknownFieldError{Target: "personal", Field: key}
	}
}

// EntryField returns the current value of one field of one entry ("" when absent)
func EntryField(doc types.ResumeDocument, list List, index int, field string) (string, error) {
	n := Len(doc, list)
	if n < 0 {
		return "", &UnknownListError{List: string(list)}
	}
	if index < 0 || index >= n {
		return "", &IndexOutOfRangeError{List: string(list), Index: index, Length: n}
	}

	switch list {
	case ListWorkExperience:
		e := doc.WorkExperience[index]
		switch field {
		case "job_title":
			return e.JobTitle, nil
		case "employer":
			return e.Employer, nil
		case "start_date":
			return e.StartDate, nil
		case "end_date":
			return types.Deref(e.EndDate), nil
		case FieldDescription:
			return e.Description, nil
		}
	case ListProjects:
		p := doc.Projects[index]
		switch field {
		case "title":
			return p.Title, nil
		case "year":
			return types.Deref(p.Year), nil
		case "tech_stack":
			return types.Deref(p.TechStack), nil
		case FieldDescription:
			return p.Description, nil
		}
	case ListEducation:
		e := doc.Education[index]
		switch field {
		case "institution":
			return e.Institution, nil
		case "degree":
			return e.Degree, nil
		case "start_date":
			return e.StartDate, nil
		case "end_date":
			return types.Deref(e.EndDate), nil
		case "major":
			return types.Deref(e.Major), nil
		case "gpa":
			return types.Deref(e.GPA), nil
		}
	}
	return "", &UnknownFieldError{Target: string(list), Field: field}
}
