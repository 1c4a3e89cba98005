package gemini

import (
	"fmt"
	"net/url"
	"time"

	"github.com/acevedoonyx/onyx/internal/ai"
)

const (
	DefaultModel       = "gemini-3-flash-preview"
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultTimeout     = 60 * time.Second
)

// Config configures the Gemini provider. BaseURL is empty for the public
// endpoint and only set to reach a proxy or a test server.
type Config struct {
	APIKey             string        `json:"api_key"`
	BaseURL            string        `json:"base_url,omitempty"`
	DefaultModel       string        `json:"default_model"`
	MaxTokens          int           `json:"max_tokens,omitempty"`
	DefaultTemperature float64       `json:"default_temperature"`
	DefaultTopP        float64       `json:"default_top_p"`
	Timeout            time.Duration `json:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultModel:       DefaultModel,
		DefaultTemperature: DefaultTemperature,
		DefaultTopP:        DefaultTopP,
		Timeout:            DefaultTimeout,
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ai.NewConfigurationError("gemini", "api_key", "API key is required")
	}

	if c.BaseURL != "" {
		if _, err := url.Parse(c.BaseURL); err != nil {
			return ai.NewConfigurationError("gemini", "base_url", fmt.Sprintf("invalid base URL: %v", err))
		}
	}

	if c.DefaultModel == "" {
		return ai.NewConfigurationError("gemini", "default_model", "default model is required")
	}

	if c.MaxTokens < 0 {
		return ai.NewConfigurationError("gemini", "max_tokens", "max tokens cannot be negative")
	}

	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		return ai.NewConfigurationError("gemini", "default_temperature", "temperature must be between 0 and 2")
	}

	if c.DefaultTopP < 0 || c.DefaultTopP > 1 {
		return ai.NewConfigurationError("gemini", "default_top_p", "top_p must be between 0 and 1")
	}

	if c.Timeout <= 0 {
		return ai.NewConfigurationError("gemini", "timeout", "timeout must be positive")
	}

	return nil
}

func (c *Config) ToProviderConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Name:               "gemini",
		Type:               "gemini",
		APIKey:             c.APIKey,
		BaseURL:            c.BaseURL,
		DefaultModel:       c.DefaultModel,
		MaxTokens:          c.MaxTokens,
		DefaultTemperature: ai.Float64(c.DefaultTemperature),
		DefaultTopP:        ai.Float64(c.DefaultTopP),
		Timeout:            c.Timeout,
	}
}

func FromProviderConfig(config *ai.ProviderConfig) *Config {
	c := DefaultConfig()
	if config == nil {
		return c
	}

	c.APIKey = config.APIKey
	c.BaseURL = config.BaseURL
	c.MaxTokens = config.MaxTokens
	if config.DefaultModel != "" {
		c.DefaultModel = config.DefaultModel
	}
	c.DefaultTemperature = ai.ValueOr(config.DefaultTemperature, c.DefaultTemperature)
	c.DefaultTopP = ai.ValueOr(config.DefaultTopP, c.DefaultTopP)
	if config.Timeout != 0 {
		c.Timeout = config.Timeout
	}

	return c
}
