package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultTemperature applies when a request leaves Temperature at zero
const DefaultTemperature float32 = 0.1

// Request is one generation call
type Request struct {
	System      string    // optional system instruction
	Prompt      string
	Tier        ModelTier // TierStandard when empty
	Temperature float32
	MaxTokens   int32 // zero keeps the provider default
	JSON        bool  // ask for JSON and strip fences from the answer
}

// Client generates text
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	// Model reports the provider model that serves tier
	Model(tier ModelTier) string
	Close() error
}

var (
	errNoCandidates = errors.New("model returned no candidates")
	errNoText       = errors.New("model returned no text")
)

// NewClient connects to the provider named by cfg; nil means DefaultConfig
func NewClient(ctx context.Context, cfg *Config, apiKey string) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Provider != ProviderGemini {
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{genai: gc, cfg: cfg}, nil
}

type geminiClient struct {
	genai *genai.Client
	cfg   *Config
}

func (c *geminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if req.Tier == "" {
		req.Tier = TierStandard
	}
	name := c.cfg.Model(req.Tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	resp, err := c.model(name, req).GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("%s: generate content: %w", name, err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if req.JSON {
		return CleanJSONBlock(text), nil
	}
	return strings.TrimSpace(text), nil
}

// model applies the request's sampling settings to a fresh model handle
func (c *geminiClient) model(name string, req Request) *genai.GenerativeModel {
	m := c.genai.GenerativeModel(name)

	temp := req.Temperature
	if temp == 0 {
		temp = DefaultTemperature
	}
	m.SetTemperature(temp)
	if req.MaxTokens > 0 {
		m.SetMaxOutputTokens(req.MaxTokens)
	}
	if req.System != "" {
		m.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	}
	if req.JSON {
		m.ResponseMIMEType = "application/json"
	}
	return m
}

func (c *geminiClient) Model(tier ModelTier) string {
	return c.cfg.Model(tier)
}

func (c *geminiClient) Close() error {
	return c.genai.Close()
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errNoCandidates
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", errNoText
	}

	var b strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errNoText
	}
	return b.String(), nil
}
