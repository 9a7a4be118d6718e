package templates

import (
	"embed"
	"fmt"
	"maps"
	"path"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed definitions/*.yaml
var definitionFS embed.FS

// Default is the template used when none is selected
const Default = "minimal"

// SectionKind identifies one independently includable block of a page
type SectionKind string

const (
	SectionAbout          SectionKind = "about"
	SectionSkills         SectionKind = "skills"
	SectionWorkExperience SectionKind = "work_experience"
	SectionProjects       SectionKind = "projects"
	SectionEducation      SectionKind = "education"
	SectionContact        SectionKind = "contact"
)

// SectionKinds lists every known section kind in canonical order
func SectionKinds() []SectionKind {
	return []SectionKind{SectionAbout, SectionSkills, SectionWorkExperience, SectionProjects, SectionEducation, SectionContact}
}

// Color is one badge color, expressed for both the HTML and the terminal target
type Color struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Terminal   string `yaml:"terminal"`
}

// Theme carries the presentational values of a template
type Theme struct {
	Accent           string `yaml:"accent"`
	Text             string `yaml:"text"`
	Muted            string `yaml:"muted"`
	Background       string `yaml:"background"`
	Surface          string `yaml:"surface"`
	HeaderBackground string `yaml:"header_background"`
	HeaderText       string `yaml:"header_text"`
	Radius           string `yaml:"radius"`
	Font             string `yaml:"font"`
}

// Definition is a named rendering strategy. Registries hand out copies, so
// a definition obtained from one can be changed without affecting others.
type Definition struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	TitleSuffix string                 `yaml:"title_suffix"`
	Sections    []SectionKind          `yaml:"sections"`
	Headings    map[SectionKind]string `yaml:"headings"`
	LinkPhone   bool                   `yaml:"link_phone"`
	Palette     []Color                `yaml:"palette"`
	Theme       Theme                  `yaml:"theme"`
}

// Heading returns the display heading of a section
func (d *Definition) Heading(kind SectionKind) string {
	return d.Headings[kind]
}

// clone returns a copy that shares no slices or maps with d
func (d *Definition) clone() *Definition {
	c := *d
	c.Sections = slices.Clone(d.Sections)
	c.Headings = maps.Clone(d.Headings)
	c.Palette = slices.Clone(d.Palette)
	return &c
}

func (d *Definition) validate() error {
	if d.Name == "" {
		return &DefinitionError{Message: "name is required"}
	}
	if len(d.Palette) == 0 {
		return &DefinitionError{Message: fmt.Sprintf("%s: palette must not be empty", d.Name)}
	}
	known := make(map[SectionKind]bool)
	for _, k := range SectionKinds() {
		known[k] = true
	}
	seen := make(map[SectionKind]bool)
	for _, k := range d.Sections {
		if !known[k] {
			return &DefinitionError{Message: fmt.Sprintf("%s: unknown section %q", d.Name, k)}
		}
		if seen[k] {
			return &DefinitionError{Message: fmt.Sprintf("%s: section %q listed twice", d.Name, k)}
		}
		seen[k] = true
		if d.Headings[k] == "" {
			return &DefinitionError{Message: fmt.Sprintf("%s: missing heading for %q", d.Name, k)}
		}
	}
	return nil
}

// Registry maps template names to definitions
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry builds a registry from already parsed definitions
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.defs[d.Name]; dup {
			return nil, &DefinitionError{Message: fmt.Sprintf("duplicate template %q", d.Name)}
		}
		r.defs[d.Name] = d.clone()
	}
	return r, nil
}

// Parse reads one YAML definition
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, &DefinitionError{Message: "failed to parse YAML", Cause: err}
	}
	return &def, nil
}

// Lookup returns a copy of the definition registered under name. Changes
// to the copy do not reach the registry.
func (r *Registry) Lookup(name string) (*Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, &UnknownTemplateError{Name: name, Available: r.Names()}
	}
	return def.clone(), nil
}

// Names returns the registered template names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	builtinOnce sync.Once
	builtin     *Registry
	builtinErr  error
)

// Builtin returns the registry of embedded definitions
func Builtin() (*Registry, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = loadEmbedded()
	})
	return builtin, builtinErr
}

func loadEmbedded() (*Registry, error) {
	entries, err := definitionFS.ReadDir("definitions")
	if err != nil {
		return nil, &DefinitionError{Message: "failed to read embedded definitions", Cause: err}
	}

	var defs []*Definition
	for _, entry := range entries {
		data, err := definitionFS.ReadFile(path.Join("definitions", entry.Name()))
		if err != nil {
			return nil, &DefinitionError{Message: entry.Name(), Cause: err}
		}
		def, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		defs = append(defs, def)
	}
	return NewRegistry(defs...)
}

// Lookup finds a built-in definition by name
func Lookup(name string) (*Definition, error) {
	r, err := Builtin()
	if err != nil {
		return nil, err
	}
	return r.Lookup(name)
}

// Names lists the built-in template names
func Names() []string {
	r, err := Builtin()
	if err != nil {
		return nil
	}
	return r.Names()
}
