// Package llm provides the language model client used to write company summaries.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short, cheap completions
	TierLite ModelTier = "lite"
	// TierStandard is the default for most generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form writing such as research summaries
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
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

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string, len(c.Models)+1),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// GenerateOptions tunes a single generation call. Zero values leave the
// provider default in place.
type GenerateOptions struct {
	Tier              ModelTier
	SystemInstruction string
	Temperature       float32
	TopP              float32
	MaxOutputTokens   int32
}

// SummaryOptions returns the options used for company research summaries.
func SummaryOptions(system string) GenerateOptions {
	return GenerateOptions{
		Tier:              TierAdvanced,
		SystemInstruction: system,
		Temperature:       0.7,
		TopP:              0.9,
		MaxOutputTokens:   2000,
	}
}
