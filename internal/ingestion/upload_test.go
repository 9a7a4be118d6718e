package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_Validate(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		max      int64
		wantMsg  string
	}{
		{"docx accepted", "resume.docx", 1024, 0, ""},
		{"uppercase extension", "Resume.TXT", 10, 0, ""},
		{"markdown accepted", "cv.md", 10, 0, ""},
		{"exactly at limit", "cv.md", DefaultMaxUploadBytes, 0, ""},
		{"missing file", "", 10, 0, "No file uploaded."},
		{"pdf rejected", "resume.pdf", 10, 0, "Invalid file type. Only DOCX, TXT and MD files are allowed."},
		{"no extension", "resume", 10, 0, "Invalid file type. Only DOCX, TXT and MD files are allowed."},
		{"empty file", "resume.docx", 0, 0, "Uploaded file is empty."},
		{"over default limit", "resume.docx", DefaultMaxUploadBytes + 1, 0, "File too large. Maximum size is 5MB."},
		{"over custom limit", "resume.docx", 2048, 1024, "File too large. Maximum size is 1KB."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewUpload(tt.filename, tt.size).Validate(tt.max)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsUploadError(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestNewUpload_StripsDirectories(t *testing.T) {
	u := NewUpload("../../etc/Resume.DOCX", 5)
	assert.Equal(t, "Resume.DOCX", u.Filename)
	assert.Equal(t, ".docx", u.Extension)
}

func TestTooLarge(t *testing.T) {
	err := TooLarge(0)
	assert.True(t, IsUploadError(err))
	assert.Equal(t, "File too large. Maximum size is 5MB.", err.Error())
}
