package ai

import (
	"strconv"
	"time"
)

// CompletionRequest represents a request for text completion
type CompletionRequest struct {
	// Prompt is the user turn sent to the model
	Prompt string `json:"prompt"`

	// SystemPrompt provides system-level instructions
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Model specifies which model to use (provider-specific)
	Model string `json:"model,omitempty"`

	// MaxTokens limits the response length
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 2.0); nil uses the provider default
	Temperature *float64 `json:"temperature,omitempty"`

	// TopP is the nucleus sampling cutoff (0.0 to 1.0); nil uses the provider default
	TopP *float64 `json:"top_p,omitempty"`

	// Metadata for request tracking
	RequestID string            `json:"request_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Validate checks the request before it is sent
func (r *CompletionRequest) Validate() error {
	if r.Prompt == "" {
		return NewValidationError("prompt", r.Prompt, "prompt cannot be empty")
	}
	if r.MaxTokens < 0 {
		return NewValidationError("max_tokens", strconv.Itoa(r.MaxTokens), "max_tokens cannot be negative")
	}
	if t := r.Temperature; t != nil && (*t < 0 || *t > 2) {
		return NewValidationError("temperature", strconv.FormatFloat(*t, 'f', -1, 64), "temperature must be between 0 and 2")
	}
	if p := r.TopP; p != nil && (*p < 0 || *p > 1) {
		return NewValidationError("top_p", strconv.FormatFloat(*p, 'f', -1, 64), "top_p must be between 0 and 1")
	}
	return nil
}

// Float64 returns a pointer to v, for the optional sampling fields
func Float64(v float64) *float64 {
	return &v
}

// ValueOr returns *v, or fallback when v is nil
func ValueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// CompletionResponse represents the response from a completion request
type CompletionResponse struct {
	// Content is the generated text
	Content string `json:"content"`

	// FinishReason indicates why the completion finished
	FinishReason string `json:"finish_reason"`

	// Usage contains token usage information
	Usage *TokenUsage `json:"usage"`

	// Model indicates which model was used
	Model string `json:"model"`

	// RequestID matches the original request
	RequestID string `json:"request_id,omitempty"`

	// CreatedAt timestamp
	CreatedAt time.Time `json:"created_at"`
}

// TokenUsage tracks token consumption
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderConfig contains configuration for a provider
type ProviderConfig struct {
	// Name is the provider identifier
	Name string `json:"name"`

	// Type is the provider type (gemini, openai)
	Type string `json:"type"`

	// APIKey for authentication
	APIKey string `json:"api_key,omitempty"`

	// BaseURL for the API endpoint
	BaseURL string `json:"base_url,omitempty"`

	// DefaultModel is the default model to use
	DefaultModel string `json:"default_model,omitempty"`

	// MaxTokens caps response length; zero leaves it to the backend
	MaxTokens int `json:"max_tokens,omitempty"`

	// DefaultTemperature and DefaultTopP apply when a request leaves them
	// unset. Nil keeps the provider's own default; zero is a valid setting.
	DefaultTemperature *float64 `json:"default_temperature,omitempty"`
	DefaultTopP        *float64 `json:"default_top_p,omitempty"`

	// Timeout for requests
	Timeout time.Duration `json:"timeout,omitempty"`

	// Custom headers for requests
	Headers map[string]string `json:"headers,omitempty"`
}

// Validate checks the fields every provider relies on
func (c *ProviderConfig) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", c.Name, "name cannot be empty")
	}
	if c.Type == "" {
		return NewValidationError("type", c.Type, "type cannot be empty")
	}
	if c.Timeout < 0 {
		return NewValidationError("timeout", c.Timeout.String(), "timeout cannot be negative")
	}
	return nil
}
