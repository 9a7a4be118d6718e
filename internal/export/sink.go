package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	// FilenameSuffix is appended to the derived base name
	FilenameSuffix = "-portfolio"
	// FallbackName is used when the document has no name
	FallbackName = "portfolio"
)

// Filename derives the HTML download name from personal.name
func Filename(doc types.ResumeDocument) string {
	return baseName(doc) + FilenameSuffix + ".html"
}

// PDFFilename derives the PDF download name from personal.name
func PDFFilename(doc types.ResumeDocument) string {
	return baseName(doc) + FilenameSuffix + ".pdf"
}

func baseName(doc types.ResumeDocument) string {
	name := strings.TrimSpace(types.Deref(doc.Personal.Name))
	if name == "" {
		return FallbackName
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r < 0x20 || r == 0x7f:
			return '-'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '-'
		}
		return r
	}, name)
}

// Sink receives a finished export. It is the only side effect of exporting.
type Sink interface {
	Save(ctx context.Context, filename string, content []byte) (string, error)
}

// FileSink writes exports into a directory
type FileSink struct {
	Dir string
}

// Save writes content to Dir/filename and returns the written path
func (s FileSink) Save(ctx context.Context, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Error{Stage: StageWrite, Message: fmt.Sprintf("failed to create output directory %s", dir), Cause: err}
	}

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", &Error{Stage: StageWrite, Message: fmt.Sprintf("failed to write %s", path), Cause: err}
	}
	return path, nil
}
