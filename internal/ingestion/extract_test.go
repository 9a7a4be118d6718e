package ingestion

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Ada Lovelace</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Engineer at </w:t></w:r><w:r><w:rPr><w:b/></w:rPr><w:t>Acme &amp; Sons</w:t></w:r></w:p>
    <w:p><w:r><w:t>2020</w:t><w:tab/><w:t>Present</w:t><w:br/><w:t>London</w:t></w:r></w:p>
    <w:p/>
    <w:p><w:r><w:t>Skills: Go, SQL</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_Docx(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   documentXML,
	})

	text, err := ExtractText("resume.DOCX", data)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace\nEngineer at Acme & Sons\n2020 Present\nLondon\n\nSkills: Go, SQL", text)
}

func TestExtractText_DocxWithoutDocument(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/styles.xml": `<styles/>`})

	_, err := ExtractText("resume.docx", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document.xml not found")
}

func TestExtractText_DocxExpansionLimit(t *testing.T) {
	old := maxDocumentXMLBytes
	maxDocumentXMLBytes = int64(len(documentXML))
	t.Cleanup(func() { maxDocumentXMLBytes = old })

	text, err := ExtractText("resume.docx", buildDocx(t, map[string]string{"word/document.xml": documentXML}))
	require.NoError(t, err, "a body exactly at the limit is read")
	assert.Contains(t, text, "Ada Lovelace")

	// Highly compressible padding: the archive stays tiny while the body exceeds the limit
	padded := strings.Replace(documentXML, "<w:body>", "<w:body>"+strings.Repeat(" ", 64*1024), 1)
	data := buildDocx(t, map[string]string{"word/document.xml": padded})
	require.Less(t, len(data), len(padded)/10)

	_, err = ExtractText("resume.docx", data)
	assert.ErrorIs(t, err, ErrDocumentTooLarge)
}

func TestExtractText_DocxNotAZip(t *testing.T) {
	_, err := ExtractText("resume.docx", []byte("plain text pretending"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open docx")
}

func TestExtractText_PlainText(t *testing.T) {
	text, err := ExtractText("cv.md", []byte("\xef\xbb\xbf# Ada\r\n\r\n\r\n\r\nEngineer"))
	require.NoError(t, err)
	assert.Equal(t, "# Ada\n\nEngineer", text)

	text, err = ExtractText("cv.txt", []byte("Ada   Lovelace"))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", text)
}

func TestExtractText_Unsupported(t *testing.T) {
	_, err := ExtractText("resume.pdf", []byte("%PDF-1.7"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
}
