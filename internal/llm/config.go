// Package llm wraps the generative text endpoint used to draft narrative RFP sections.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is a non-thinking model for short single-paragraph drafts
	TierLite ModelTier = "lite"
	// TierStandard is for longer drafts that benefit from some reasoning
	TierStandard ModelTier = "standard"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultMaxOutputTokens bounds a single section draft
const DefaultMaxOutputTokens int32 = 1024

// Config holds the model configuration for text generation
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Tier is used for every request. TierLite is the fast-response setting.
	Tier            ModelTier
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Tier:            TierLite,
		Temperature:     0.7,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try lite, then standard
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}

// Model returns the model name requests are sent to
func (c *Config) Model() string {
	return c.GetModel(c.Tier)
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}
