package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Metadata describes an ingested résumé file
type Metadata struct {
	Filename  string `json:"filename"`
	Format    string `json:"format"`
	Size      int    `json:"size"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the file
	WordCount int    `json:"word_count"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(filename string, content []byte, text string) *Metadata {
	return &Metadata{
		Filename:  filename,
		Format:    strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		Size:      len(content),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		WordCount: WordCount(text),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// Fields returns the metadata as log fields
func (m *Metadata) Fields() []zap.Field {
	return []zap.Field{
		zap.String("filename", m.Filename),
		zap.String("format", m.Format),
		zap.Int("size", m.Size),
		zap.String("hash", m.Hash),
		zap.Int("word_count", m.WordCount),
	}
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
