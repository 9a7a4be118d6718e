package ingestion

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxUploadBytes is the upload size limit when none is configured
const DefaultMaxUploadBytes = 5 * 1024 * 1024

// Upload describes a received file before its content is read
type Upload struct {
	Filename  string `validate:"required"`
	Extension string `validate:"oneof=.docx .txt .md"`
	Size      int64  `validate:"gt=0"`
}

// NewUpload describes a file by name and size
func NewUpload(filename string, size int64) Upload {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return Upload{Size: size}
	}
	return Upload{
		Filename:  filepath.Base(filename),
		Extension: strings.ToLower(filepath.Ext(filename)),
		Size:      size,
	}
}

// TooLarge is the error for a file over maxBytes whose size is not known exactly
func TooLarge(maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadError{Message: fmt.Sprintf("File too large. Maximum size is %s.", formatBytes(maxBytes))}
}

// Validate checks the file type, emptiness and the size limit (0 = DefaultMaxUploadBytes)
func (u Upload) Validate(maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	validate := validator.New()
	if err := validate.Struct(u); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Filename":
				return &UploadError{Message: "No file uploaded.", Cause: err}
			case "Extension":
				return &UploadError{Message: "Invalid file type. Only DOCX, TXT and MD files are allowed.", Cause: err}
			case "Size":
				return &UploadError{Message: "Uploaded file is empty.", Cause: err}
			}
		}
		return &UploadError{Message: "Invalid upload.", Cause: err}
	}

	if err := validate.Var(u.Size, fmt.Sprintf("lte=%d", maxBytes)); err != nil {
		return TooLarge(maxBytes)
	}
	return nil
}

func formatBytes(n int64) string {
	const mb = 1024 * 1024
	if n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	if n >= 1024 && n%1024 == 0 {
		return fmt.Sprintf("%dKB", n/1024)
	}
	return fmt.Sprintf("%d bytes", n)
}
