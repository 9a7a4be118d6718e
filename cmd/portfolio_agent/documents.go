package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// readDocument loads and normalizes a document JSON file
func readDocument(path string) (types.ResumeDocument, error) {
	if path == "" {
		return types.ResumeDocument{}, fmt.Errorf("--in is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to read document: %w", err)
	}

	if err := schemas.ValidateRecord(data); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	return portfolio.Normalize(doc), nil
}

// writeDocument writes doc as indented JSON to path, or to out when path is empty or "-"
func writeDocument(out io.Writer, path string, doc types.ResumeDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
