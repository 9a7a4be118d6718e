package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/portfolio-builder/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportDocument_HTML(t *testing.T) {
	c, _ := setup(t, nil)
	in := writeSample(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, exportDocument(context.Background(), &stdout, &stderr, exportOptions{in: in, template: "modern"}))

	path := filepath.Join(c.OutputDir, "Ada Lovelace-portfolio.html")
	assert.Equal(t, "Exported "+path+"\n", stdout.String())
	assert.Empty(t, stderr.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Contains(t, string(data), "Skills &amp; Technologies")
}

func TestExportDocument_DefaultsAndVerbose(t *testing.T) {
	setup(t, nil)
	cfg.Verbose = true
	dir := filepath.Join(t.TempDir(), "site")

	var stdout, stderr bytes.Buffer
	require.NoError(t, exportDocument(context.Background(), &stdout, &stderr, exportOptions{in: writeSample(t), outDir: dir}))

	data, err := os.ReadFile(filepath.Join(dir, "Ada Lovelace-portfolio.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "template-"+templates.Default)
	assert.Contains(t, stderr.String(), "EXPORTED PORTFOLIO")
	assert.Contains(t, stderr.String(), "about, skills, work_experience, projects, education, contact")
}

func TestExportDocument_PDF(t *testing.T) {
	c, printer := setup(t, nil)

	var stdout bytes.Buffer
	require.NoError(t, exportDocument(context.Background(), &stdout, &bytes.Buffer{}, exportOptions{in: writeSample(t), format: "pdf"}))

	data, err := os.ReadFile(filepath.Join(c.OutputDir, "Ada Lovelace-portfolio.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 mock", string(data))
	require.Len(t, printer.pages, 1)
	assert.True(t, bytes.HasPrefix(printer.pages[0], []byte("<!DOCTYPE html>")))
}

func TestExportDocument_Errors(t *testing.T) {
	setup(t, nil)
	in := writeSample(t)

	err := exportDocument(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, exportOptions{in: in, format: "docx"})
	assert.ErrorContains(t, err, `unsupported format "docx"`)

	err = exportDocument(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, exportOptions{in: in, template: "baroque"})
	assert.True(t, templates.IsUnknownTemplate(err))

	err = exportDocument(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, exportOptions{})
	assert.ErrorContains(t, err, "--in is required")
}
