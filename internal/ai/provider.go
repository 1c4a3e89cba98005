package ai

import (
	"context"
)

// Provider is a text-generation backend
type Provider interface {
	// Name returns the provider name (e.g., "gemini", "openai")
	Name() string

	// Complete performs a single non-streaming completion
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// HealthCheck verifies provider connectivity and credentials
	HealthCheck(ctx context.Context) error

	// ValidateConfig validates the provider configuration
	ValidateConfig() error

	// Close cleans up provider resources
	Close() error
}
