package gemini

import (
	"context"
	"errors"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/acevedoonyx/onyx/internal/ai"
)

// Provider calls the Gemini generateContent API through the genai SDK
type Provider struct {
	config *Config
	client *genai.Client
}

func New(config *Config) (*Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     config.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: config.Timeout},
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(context.Background(), clientConfig)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeConfiguration, "failed to create client", "gemini", err)
	}

	return &Provider{
		config: config,
		client: client,
	}, nil
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if req == nil {
		return nil, ai.NewValidationError("request", "nil", "completion request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), p.buildGenerateConfig(req))
	if err != nil {
		return nil, p.classifyError(ctx, err)
	}

	out := &ai.CompletionResponse{
		Content:   resp.Text(),
		Model:     model,
		RequestID: req.RequestID,
		CreatedAt: time.Now(),
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if len(resp.Candidates) > 0 {
		out.FinishReason = string(resp.Candidates[0].FinishReason)
	}
	if usage := resp.UsageMetadata; usage != nil {
		out.Usage = &ai.TokenUsage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}

	return out, nil
}

// HealthCheck looks up the configured model, which needs a valid key
func (p *Provider) HealthCheck(ctx context.Context) error {
	if _, err := p.client.Models.Get(ctx, p.config.DefaultModel, nil); err != nil {
		return p.classifyError(ctx, err)
	}
	return nil
}

func (p *Provider) ValidateConfig() error {
	return p.config.Validate()
}

func (p *Provider) Close() error {
	return nil
}

func (p *Provider) buildGenerateConfig(req *ai.CompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(ai.ValueOr(req.Temperature, p.config.DefaultTemperature))),
		TopP:        genai.Ptr(float32(ai.ValueOr(req.TopP, p.config.DefaultTopP))),
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens > 0 {
		cfg.MaxOutputTokens = int32(maxTokens)
	}

	if req.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	return cfg
}

func (p *Provider) classifyError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request cancelled", "gemini", ctxErr)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		pe := ai.NewStatusError("gemini", apiErr.Code, apiErr.Message)
		pe.Cause = err
		return pe
	}

	return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", "gemini", err)
}
