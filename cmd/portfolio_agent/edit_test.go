package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jonathan/portfolio-builder/internal/augment"
	"github.com/jonathan/portfolio-builder/internal/editor"
	"github.com/jonathan/portfolio-builder/internal/generation"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEditSession_SaveTracksVersion(t *testing.T) {
	setup(t, nil)
	in := writeSample(t)
	out := filepath.Join(t.TempDir(), "edited.json")

	es, err := newEditSession(context.Background(), editOptions{in: in, out: out}, loadDocument(t, in), nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, templates.Default, es.def.Name)
	assert.False(t, es.unsaved())

	require.NoError(t, es.callbacks.SetPersonalField(portfolio.FieldName, "Grace Hopper"))
	assert.True(t, es.unsaved())

	path, err := es.callbacks.Save()
	require.NoError(t, err)
	assert.Equal(t, out, path)
	assert.False(t, es.unsaved())
	assert.Equal(t, "Grace Hopper", *loadDocument(t, out).Personal.Name)

	// The input file is only the source
	assert.Equal(t, "Ada Lovelace", *loadDocument(t, in).Personal.Name)
}

func TestEditSession_SaveDefaultsToInput(t *testing.T) {
	setup(t, nil)
	in := writeSample(t)

	es, err := newEditSession(context.Background(), editOptions{in: in}, loadDocument(t, in), nil, zap.NewNop())
	require.NoError(t, err)
	es.callbacks.SetBio("Edited bio")

	path, err := es.callbacks.Save()
	require.NoError(t, err)
	assert.Equal(t, in, path)
	assert.Equal(t, "Edited bio", loadDocument(t, in).Bio)
}

func TestEditSession_Export(t *testing.T) {
	c, _ := setup(t, nil)
	in := writeSample(t)

	es, err := newEditSession(context.Background(), editOptions{in: in, template: "modern"}, loadDocument(t, in), nil, zap.NewNop())
	require.NoError(t, err)

	path, err := es.callbacks.Export()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.OutputDir, "Ada Lovelace-portfolio.html"), path)
	assert.FileExists(t, path)
}

func TestEditSession_UnknownTemplate(t *testing.T) {
	setup(t, nil)
	in := writeSample(t)

	_, err := newEditSession(context.Background(), editOptions{in: in, template: "baroque"}, loadDocument(t, in), nil, zap.NewNop())
	assert.True(t, templates.IsUnknownTemplate(err))
}

func TestEditSession_GenerateThroughCallbacks(t *testing.T) {
	setup(t, nil)
	in := writeSample(t)

	es, err := newEditSession(context.Background(), editOptions{in: in}, loadDocument(t, in), generation.NewService(echoClient(), nil), zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, es.controller)

	done := make(chan augment.Result, 1)
	es.controller.OnComplete(func(r augment.Result) { done <- r })

	require.NoError(t, es.callbacks.Generate(augment.WorkExperience(1)))
	result := <-done
	require.NoError(t, result.Err)
	assert.True(t, result.Applied)
	assert.Equal(t, "Analyst text", es.session.Snapshot().WorkExperience[1].Description)
	assert.False(t, es.callbacks.Pending(augment.WorkExperience(1)))

	model, err := editor.New(es.def, es.callbacks)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", model.Frame().Name)
}

func TestEditSession_NoGenerator(t *testing.T) {
	setup(t, nil)
	in := writeSample(t)

	es, err := newEditSession(context.Background(), editOptions{in: in}, loadDocument(t, in), nil, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, es.controller)
	assert.Error(t, es.callbacks.Generate(augment.Bio()))
}
