package ingestion

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/llm"
	"github.com/jonathan/portfolio-builder/internal/prompts"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
	"go.uber.org/zap"
)

// Parser turns uploaded résumé files into records
type Parser struct {
	client   llm.Client
	maxBytes int64
	logger   *zap.Logger
}

// NewParser creates a parser. maxBytes <= 0 uses DefaultMaxUploadBytes.
func NewParser(client llm.Client, maxBytes int64, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Parser{client: client, maxBytes: maxBytes, logger: logger}
}

// MaxBytes returns the upload size limit
func (p *Parser) MaxBytes() int64 {
	return p.maxBytes
}

// Parse validates the upload, extracts its text and asks the model for a structured record.
// The record carries the cleaned text as RawText and its word count.
func (p *Parser) Parse(ctx context.Context, filename string, content []byte) (*types.ResumeRecord, *Metadata, error) {
	if err := NewUpload(filename, int64(len(content))).Validate(p.maxBytes); err != nil {
		return nil, nil, err
	}

	text, err := ExtractText(filename, content)
	if err != nil {
		return nil, nil, &ExtractionError{Stage: "text", Message: "could not read file", Cause: err}
	}
	if text == "" {
		return nil, nil, &ExtractionError{Stage: "text", Message: "no text found in file"}
	}

	meta := NewMetadata(filename, content, text)
	p.logger.Debug("resume text extracted", meta.Fields()...)

	record, err := p.ExtractRecord(ctx, text)
	if err != nil {
		return nil, meta, err
	}
	record.RawText = text
	record.WordCount = meta.WordCount
	return record, meta, nil
}

// ExtractRecord asks the model to structure résumé text and checks the answer against the record schema
func (p *Parser) ExtractRecord(ctx context.Context, text string) (*types.ResumeRecord, error) {
	if p.client == nil {
		return nil, &ExtractionError{Stage: "llm", Message: "no LLM client configured"}
	}

	prompt, err := prompts.Render(prompts.KeyExtractResume, map[string]string{"ResumeText": text})
	if err != nil {
		return nil, &ExtractionError{Stage: "llm", Message: "failed to load prompt", Cause: err}
	}

	resp, err := p.client.Generate(ctx, llm.Request{
		System:      prompt.System,
		Prompt:      prompt.User,
		Tier:        llm.TierStandard,
		Temperature: prompt.Temperature,
		MaxTokens:   prompt.MaxTokens,
		JSON:        prompt.JSON,
	})
	if err != nil {
		return nil, &ExtractionError{Stage: "llm", Message: "model call failed", Cause: err}
	}

	raw := llm.CleanJSONBlock(resp)
	if strings.TrimSpace(raw) == "" {
		return nil, &ExtractionError{Stage: "llm", Message: "model returned no JSON"}
	}
	if err := schemas.ValidateRecord([]byte(raw)); err != nil {
		p.logger.Debug("extracted record rejected", zap.String("output", raw), zap.Error(err))
		return nil, &ExtractionError{Stage: "schema", Message: "model returned an invalid record", Cause: err}
	}

	var record types.ResumeRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, &ExtractionError{Stage: "schema", Message: "failed to decode record", Cause: err}
	}
	return &record, nil
}
