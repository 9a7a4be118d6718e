// Package prompts holds the model prompts, kept as an embedded JSON catalog
// keyed by task.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Prompt keys in the catalog
const (
	KeyBio                = "bio"
	KeyWorkDescription    = "work-description"
	KeyProjectDescription = "project-description"
	KeyCoverLetter        = "cover-letter"
	KeyExtractResume      = "extract-resume"
)

//go:embed portfolio.json
var catalogJSON []byte

// Prompt is one system/user prompt pair with its sampling settings
type Prompt struct {
	System      string  `json:"system"`
	User        string  `json:"user"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int32   `json:"max_tokens"`
	JSON        bool    `json:"json"`
}

var catalog = sync.OnceValues(func() (map[string]Prompt, error) {
	return parseCatalog(catalogJSON)
})

func parseCatalog(data []byte) (map[string]Prompt, error) {
	var entries map[string]Prompt
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalog: %w", err)
	}
	for key, p := range entries {
		if p.User == "" {
			return nil, fmt.Errorf("prompt %q has no user template", key)
		}
	}
	return entries, nil
}

// Lookup returns the raw prompt stored under key
func Lookup(key string) (Prompt, error) {
	entries, err := catalog()
	if err != nil {
		return Prompt{}, err
	}
	p, ok := entries[key]
	if !ok {
		return Prompt{}, fmt.Errorf("prompt %q not found", key)
	}
	return p, nil
}

// Keys lists the catalog keys in order
func Keys() ([]string, error) {
	entries, err := catalog()
	if err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(entries)), nil
}

// Render looks up key and fills its user template with data
func Render(key string, data map[string]string) (Prompt, error) {
	p, err := Lookup(key)
	if err != nil {
		return Prompt{}, err
	}
	p.User = Format(p.User, data)
	return p, nil
}

// Format substitutes {{.Key}} placeholders in one pass, so values are never
// expanded again. Placeholders without a value stay as they are.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
