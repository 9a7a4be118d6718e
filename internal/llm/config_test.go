package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Model(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.Model(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", cfg.Model(TierAdvanced))
}

func TestConfig_ModelStepsDown(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierLite: "small", TierStandard: "medium"}}

	assert.Equal(t, "medium", cfg.Model(TierAdvanced))
	assert.Equal(t, "medium", cfg.Model("unknown"))
	assert.Equal(t, "small", cfg.Model(TierLite))

	lite := &Config{Models: map[ModelTier]string{TierLite: "small"}}
	assert.Equal(t, "small", lite.Model(TierAdvanced))

	assert.Empty(t, (&Config{}).Model(TierAdvanced))
}

func TestConfig_Override(t *testing.T) {
	base := DefaultConfig()

	next, err := base.Override(map[string]string{"advanced": "custom-pro", "lite": ""})
	require.NoError(t, err)
	assert.Equal(t, "custom-pro", next.Model(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", next.Model(TierLite), "blank names keep the default")
	assert.Equal(t, "gemini-2.5-pro", base.Model(TierAdvanced), "original is unchanged")

	_, err = base.Override(map[string]string{"huge": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown model tier "huge"`)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "openai"}, "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}
