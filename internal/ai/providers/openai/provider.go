package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/acevedoonyx/onyx/internal/ai"
)

type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError("openai", "base_url", fmt.Sprintf("invalid base URL: %v", err))
	}

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

func (p *Provider) Name() string {
	return "openai"
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if req == nil {
		return nil, ai.NewValidationError("request", "nil", "completion request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	chatReq := p.buildChatRequest(req)

	response, err := p.sendChatRequest(ctx, chatReq)
	if err != nil {
		return nil, err
	}

	return response.ToAIResponse(req.RequestID), nil
}

func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// HealthCheck lists the endpoint's models, which exercises both
// connectivity and credentials
func (p *Provider) HealthCheck(ctx context.Context) error {
	endpoint := p.baseURL.JoinPath("/v1/models")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "failed to create health check request", "openai", err)
	}
	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return p.transportError(ctx, "health check request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return p.handleErrorResponse(resp)
	}
	return nil
}

func (p *Provider) buildChatRequest(req *ai.CompletionRequest) *ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	chatReq := &ChatCompletionRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: ai.Float64(ai.ValueOr(req.Temperature, p.config.DefaultTemperature)),
		TopP:        ai.Float64(ai.ValueOr(req.TopP, p.config.DefaultTopP)),
		User:        req.RequestID,
	}

	chatReq.ToMessages(req.SystemPrompt, req.Prompt)

	return chatReq
}

func (p *Provider) sendChatRequest(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	endpoint := p.baseURL.JoinPath("/v1/chat/completions")

	body, err := json.Marshal(req)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", "openai", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to create request", "openai", err)
	}
	p.setHeaders(httpReq)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, p.transportError(ctx, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, p.handleErrorResponse(resp)
	}

	var chatResp ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to decode response", "openai", err)
	}

	return &chatResp, nil
}

func (p *Provider) setHeaders(req *http.Request) {
	if p.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	}
	req.Header.Set("Content-Type", "application/json")

	if p.config.OrganizationID != "" {
		req.Header.Set("OpenAI-Organization", p.config.OrganizationID)
	}
}

// transportError reports a request that never got a response
func (p *Provider) transportError(ctx context.Context, message string, err error) error {
	if ctx.Err() != nil {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request cancelled", "openai", ctx.Err())
	}
	return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, message, "openai", err)
}

func (p *Provider) handleErrorResponse(resp *http.Response) error {
	var message string
	if body, err := io.ReadAll(resp.Body); err == nil {
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil {
			message = errorResp.Error.Message
		}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return ai.NewRateLimitError("openai", retryAfter, "requests")
	}
	return ai.NewStatusError("openai", resp.StatusCode, message)
}
