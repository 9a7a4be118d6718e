package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	p, err := Lookup(KeyBio)
	require.NoError(t, err)
	assert.Contains(t, p.System, "portfolio bios")
	assert.Contains(t, p.User, "{{.Name}}")
	assert.InDelta(t, 0.7, p.Temperature, 0.001)
	assert.Equal(t, int32(200), p.MaxTokens)
	assert.False(t, p.JSON)

	_, err = Lookup("nonexistent-key")
	assert.ErrorContains(t, err, `prompt "nonexistent-key" not found`)
}

func TestCatalog_Complete(t *testing.T) {
	keys, err := Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{KeyBio, KeyCoverLetter, KeyExtractResume, KeyProjectDescription, KeyWorkDescription}, keys)

	for _, key := range keys {
		p, err := Lookup(key)
		require.NoError(t, err)
		assert.NotEmpty(t, p.System, key)
		assert.Positive(t, p.MaxTokens, key)
	}

	extract, err := Lookup(KeyExtractResume)
	require.NoError(t, err)
	assert.True(t, extract.JSON)
}

func TestParseCatalog_Errors(t *testing.T) {
	_, err := parseCatalog([]byte(`{"bio": `))
	assert.ErrorContains(t, err, "failed to parse prompt catalog")

	_, err = parseCatalog([]byte(`{"bio": {"system": "x"}}`))
	assert.ErrorContains(t, err, `prompt "bio" has no user template`)
}

func TestFormat(t *testing.T) {
	got := Format("Hello {{.Name}}, you know {{.Skills}}. {{.Missing}}", map[string]string{
		"Name":   "Ada",
		"Skills": "{{.Name}}",
	})
	assert.Equal(t, "Hello Ada, you know {{.Name}}. {{.Missing}}", got)
}

func TestRender(t *testing.T) {
	p, err := Render(KeyWorkDescription, map[string]string{
		"JobTitle":    "Engineer",
		"Employer":    "Acme",
		"Description": "built things",
	})
	require.NoError(t, err)
	assert.Contains(t, p.User, "Job title: Engineer")
	assert.Contains(t, p.User, "Employer: Acme")
	assert.NotContains(t, p.User, "{{.")
}
