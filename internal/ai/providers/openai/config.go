package openai

import (
	"fmt"
	"net/url"
	"time"

	"github.com/acevedoonyx/onyx/internal/ai"
)

const (
	DefaultBaseURL     = "https://api.openai.com"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultTimeout     = 60 * time.Second
)

// Config configures a provider for any OpenAI-compatible chat completions
// endpoint. An API key is only required against the public API; local
// servers usually run without one. Every query is a single request.
type Config struct {
	APIKey             string        `json:"api_key"`
	BaseURL            string        `json:"base_url"`
	DefaultModel       string        `json:"default_model"`
	MaxTokens          int           `json:"max_tokens,omitempty"`
	DefaultTemperature float64       `json:"default_temperature"`
	DefaultTopP        float64       `json:"default_top_p"`
	Timeout            time.Duration `json:"timeout"`
	OrganizationID     string        `json:"organization_id,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:            DefaultBaseURL,
		DefaultModel:       DefaultModel,
		DefaultTemperature: DefaultTemperature,
		DefaultTopP:        DefaultTopP,
		Timeout:            DefaultTimeout,
	}
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ai.NewConfigurationError("openai", "base_url", "base URL is required")
	}

	if _, err := url.Parse(c.BaseURL); err != nil {
		return ai.NewConfigurationError("openai", "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	if c.APIKey == "" && c.BaseURL == DefaultBaseURL {
		return ai.NewConfigurationError("openai", "api_key", "API key is required")
	}

	if c.DefaultModel == "" {
		return ai.NewConfigurationError("openai", "default_model", "default model is required")
	}

	if c.MaxTokens < 0 {
		return ai.NewConfigurationError("openai", "max_tokens", "max tokens cannot be negative")
	}

	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		return ai.NewConfigurationError("openai", "default_temperature", "temperature must be between 0 and 2")
	}

	if c.DefaultTopP < 0 || c.DefaultTopP > 1 {
		return ai.NewConfigurationError("openai", "default_top_p", "top_p must be between 0 and 1")
	}

	if c.Timeout <= 0 {
		return ai.NewConfigurationError("openai", "timeout", "timeout must be positive")
	}

	return nil
}

func (c *Config) ToProviderConfig() *ai.ProviderConfig {
	headers := map[string]string{}
	if c.OrganizationID != "" {
		headers["OpenAI-Organization"] = c.OrganizationID
	}

	return &ai.ProviderConfig{
		Name:               "openai",
		Type:               "openai",
		APIKey:             c.APIKey,
		BaseURL:            c.BaseURL,
		DefaultModel:       c.DefaultModel,
		MaxTokens:          c.MaxTokens,
		DefaultTemperature: ai.Float64(c.DefaultTemperature),
		DefaultTopP:        ai.Float64(c.DefaultTopP),
		Timeout:            c.Timeout,
		Headers:            headers,
	}
}

func FromProviderConfig(config *ai.ProviderConfig) *Config {
	c := DefaultConfig()
	if config == nil {
		return c
	}

	c.APIKey = config.APIKey
	c.MaxTokens = config.MaxTokens
	if config.BaseURL != "" {
		c.BaseURL = config.BaseURL
	}
	if config.DefaultModel != "" {
		c.DefaultModel = config.DefaultModel
	}
	c.DefaultTemperature = ai.ValueOr(config.DefaultTemperature, c.DefaultTemperature)
	c.DefaultTopP = ai.ValueOr(config.DefaultTopP, c.DefaultTopP)
	if config.Timeout != 0 {
		c.Timeout = config.Timeout
	}
	if orgID, ok := config.Headers["OpenAI-Organization"]; ok {
		c.OrganizationID = orgID
	}

	return c
}
