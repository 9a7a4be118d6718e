// Package llm wraps the text generation backend behind a small Client interface.
package llm

import (
	"fmt"
	"slices"
)

// ModelTier picks a model by how demanding the task is
type ModelTier string

const (
	TierLite     ModelTier = "lite"     // bios and entry descriptions
	TierStandard ModelTier = "standard" // structured résumé extraction
	TierAdvanced ModelTier = "advanced" // cover letters
)

// tierOrder runs from cheapest to most capable
var tierOrder = []ModelTier{TierLite, TierStandard, TierAdvanced}

// Provider names a backend
type Provider string

const ProviderGemini Provider = "gemini"

// Config maps tiers to provider model names
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig uses Gemini models
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// Model resolves the model for tier. An unset tier steps down to the next
// cheaper one; an unknown tier resolves like TierStandard.
func (c *Config) Model(tier ModelTier) string {
	i := slices.Index(tierOrder, tier)
	if i < 0 {
		i = slices.Index(tierOrder, TierStandard)
	}
	for ; i >= 0; i-- {
		if name := c.Models[tierOrder[i]]; name != "" {
			return name
		}
	}
	return ""
}

// Override returns a copy with models replaced by tier name, as read from
// configuration. Blank names keep the current model.
func (c *Config) Override(models map[string]string) (*Config, error) {
	next := &Config{Provider: c.Provider, Models: make(map[ModelTier]string, len(tierOrder))}
	for tier, name := range c.Models {
		next.Models[tier] = name
	}
	for key, name := range models {
		tier := ModelTier(key)
		if !slices.Contains(tierOrder, tier) {
			return nil, fmt.Errorf("unknown model tier %q (expected lite, standard or advanced)", key)
		}
		if name != "" {
			next.Models[tier] = name
		}
	}
	return next, nil
}
