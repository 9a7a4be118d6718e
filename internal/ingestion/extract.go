package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Extractor reads plain text out of one file format
type Extractor interface {
	CanExtract(filename string) bool
	Extract(content []byte) (string, error)
}

var registry []Extractor

// Register adds an extractor to the registry
func Register(e Extractor) {
	registry = append(registry, e)
}

func init() {
	Register(plainTextExtractor{extensions: []string{".txt", ".md"}})
	Register(docxExtractor{})
}

// ExtractText selects an extractor by filename and returns the cleaned text
func ExtractText(filename string, content []byte) (string, error) {
	for _, e := range registry {
		if e.CanExtract(filename) {
			text, err := e.Extract(content)
			if err != nil {
				return "", err
			}
			return CleanText(text), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(filename))
}

type plainTextExtractor struct {
	extensions []string
}

func (p plainTextExtractor) CanExtract(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range p.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (plainTextExtractor) Extract(content []byte) (string, error) {
	return string(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))), nil
}

// maxDocumentXMLBytes bounds the decompressed word/document.xml. Upload limits only cover the
// compressed archive.
var maxDocumentXMLBytes int64 = 4 * DefaultMaxUploadBytes

// ErrDocumentTooLarge is returned when a DOCX body expands past maxDocumentXMLBytes
var ErrDocumentTooLarge = errors.New("document.xml is too large")

type docxExtractor struct{}

func (docxExtractor) CanExtract(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".docx")
}

// Extract reads word/document.xml and joins paragraph text with newlines
func (docxExtractor) Extract(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		if f.UncompressedSize64 > uint64(maxDocumentXMLBytes) {
			return "", ErrDocumentTooLarge
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		docXML, err = io.ReadAll(io.LimitReader(rc, maxDocumentXMLBytes+1))
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		if int64(len(docXML)) > maxDocumentXMLBytes {
			return "", ErrDocumentTooLarge
		}
		break
	}
	if len(docXML) == 0 {
		return "", fmt.Errorf("document.xml not found in DOCX")
	}
	return paragraphs(docXML)
}

// paragraphs walks WordprocessingML: w:t is text, w:tab a tab, w:br a line break, w:p ends a paragraph
func paragraphs(docXML []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(docXML))

	var out, para strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				para.WriteString("\t")
			case "br", "cr":
				para.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteString(para.String())
				out.WriteString("\n")
				para.Reset()
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}
	out.WriteString(para.String())
	return out.String(), nil
}
