package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acevedoonyx/onyx/internal/ai"
)

const testAPIKey = "test-api-key"

func testConfig(baseURL string) *Config {
	cfg := DefaultConfig()
	cfg.APIKey = testAPIKey
	cfg.BaseURL = baseURL
	return cfg
}

func TestProvider_New(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "nil config uses defaults",
			config:  nil,
			wantErr: true, // Should fail due to missing API key
		},
		{
			name:    "valid config",
			config:  testConfig(DefaultBaseURL),
			wantErr: false,
		},
		{
			name: "invalid base URL",
			config: &Config{
				APIKey:  testAPIKey,
				BaseURL: "http://[::1]:namedport",
			},
			wantErr: true,
		},
		{
			name: "missing API key",
			config: &Config{
				BaseURL: DefaultBaseURL,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && provider == nil {
				t.Error("New() returned nil provider without error")
			}
			if provider != nil {
				_ = provider.Close()
			}
		})
	}
}

func TestProvider_LocalEndpointWithoutKey(t *testing.T) {
	cfg := testConfig("http://localhost:11434")
	cfg.APIKey = ""

	provider, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_ = provider.Close()
}

func TestProvider_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Expected /v1/chat/completions, got %s", r.URL.Path)
		}

		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+testAPIKey {
			t.Errorf("Expected Bearer %s, got %s", testAPIKey, auth)
		}

		body, _ := io.ReadAll(r.Body)
		var req ChatCompletionRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("Failed to unmarshal request: %v", err)
		}

		if req.Stream {
			t.Error("Expected stream=false")
		}
		if req.Temperature == nil || *req.Temperature != 0.7 || req.TopP == nil || *req.TopP != 0.9 {
			t.Errorf("Expected temperature 0.7 and top_p 0.9, got %v and %v", req.Temperature, req.TopP)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "Hello, world!" {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}
		if req.User != "test-request" {
			t.Errorf("Expected user test-request, got %s", req.User)
		}

		response := ChatCompletionResponse{
			ID:      "chatcmpl-test",
			Object:  "chat.completion",
			Created: time.Now().Unix(),
			Model:   req.Model,
			Choices: []ChatCompletionChoice{
				{
					Index: 0,
					Message: ChatMessage{
						Role:    "assistant",
						Content: "This is a test response",
					},
					FinishReason: "stop",
				},
			},
			Usage: ChatCompletionUsage{
				PromptTokens:     10,
				CompletionTokens: 5,
				TotalTokens:      15,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	provider, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	defer func() { _ = provider.Close() }()

	req := &ai.CompletionRequest{
		Prompt:       "Hello, world!",
		SystemPrompt: "You are Onyx.",
		RequestID:    "test-request",
	}

	resp, err := provider.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if resp.Content != "This is a test response" {
		t.Errorf("Expected 'This is a test response', got %s", resp.Content)
	}

	if resp.FinishReason != "stop" {
		t.Errorf("Expected 'stop', got %s", resp.FinishReason)
	}

	if resp.Model != DefaultModel {
		t.Errorf("Expected model %s, got %s", DefaultModel, resp.Model)
	}

	if resp.Usage == nil {
		t.Error("Expected usage information")
	} else if resp.Usage.TotalTokens != 15 {
		t.Errorf("Expected 15 total tokens, got %d", resp.Usage.TotalTokens)
	}
}

func TestProvider_CompleteKeepsZeroTemperature(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []ChatCompletionChoice{{Message: ChatMessage{Role: "assistant", Content: "ok"}}},
		})
	}))
	defer server.Close()

	provider, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x", Temperature: ai.Float64(0)})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got.Temperature == nil || *got.Temperature != 0 {
		t.Errorf("Expected an explicit temperature of 0, got %v", got.Temperature)
	}
	if got.TopP == nil || *got.TopP != DefaultTopP {
		t.Errorf("Expected default top_p %v, got %v", DefaultTopP, got.TopP)
	}
}

func TestProvider_CompleteRejectsEmptyPrompt(t *testing.T) {
	provider, err := New(testConfig(DefaultBaseURL))
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	_, err = provider.Complete(context.Background(), &ai.CompletionRequest{})
	if !ai.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestProvider_ErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType ai.ErrorType
	}{
		{"unauthorized", http.StatusUnauthorized, ai.ErrTypeAuthentication},
		{"bad request", http.StatusBadRequest, ai.ErrTypeValidation},
		{"server error", http.StatusInternalServerError, ai.ErrTypeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorDetail{Message: "boom"}})
			}))
			defer server.Close()

			provider, err := New(testConfig(server.URL))
			if err != nil {
				t.Fatalf("Failed to create provider: %v", err)
			}

			_, err = provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
			pe, ok := err.(*ai.ProviderError)
			if !ok {
				t.Fatalf("Expected *ai.ProviderError, got %T (%v)", err, err)
			}
			if pe.Type != tt.wantType || pe.StatusCode != tt.status || pe.Message != "boom" {
				t.Errorf("Unexpected error %+v", pe)
			}
		})
	}
}

func TestProvider_HealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		serverResponse func(w http.ResponseWriter, r *http.Request)
		wantErr        bool
	}{
		{
			name: "healthy response",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/models" {
					t.Errorf("Expected /v1/models, got %s", r.URL.Path)
				}
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"object":"list","data":[]}`))
			},
			wantErr:        false,
		},
		{
			name: "unauthorized response",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(ErrorResponse{
					Error: ErrorDetail{
						Message: "Invalid API key",
						Type:    "invalid_request_error",
					},
				})
			},
			wantErr:        true,
		},
		{
			name: "server error",
			serverResponse: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResponse))
			defer server.Close()

			provider, err := New(testConfig(server.URL))
			if err != nil {
				t.Fatalf("Failed to create provider: %v", err)
			}
			defer func() { _ = provider.Close() }()

			err = provider.HealthCheck(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("HealthCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProvider_RateLimitSingleAttempt(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error: ErrorDetail{
				Message: "Rate limit exceeded",
				Type:    "rate_limit_error",
			},
		})
	}))
	defer server.Close()

	provider, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	defer func() { _ = provider.Close() }()

	_, err = provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
	if !ai.IsRateLimitError(err) {
		t.Errorf("Expected rate limit error, got %v", err)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", got)
	}
}

func TestProvider_ServerErrorSingleAttempt(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider, err := New(testConfig(server.URL))
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"}); err == nil {
		t.Error("Expected an error from a 503 response")
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", got)
	}
}

func TestConfig_Validation(t *testing.T) {
	valid := func(mutate func(*Config)) *Config {
		cfg := testConfig(DefaultBaseURL)
		mutate(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  valid(func(*Config) {}),
			wantErr: false,
		},
		{
			name:    "missing API key",
			config:  valid(func(c *Config) { c.APIKey = "" }),
			wantErr: true,
		},
		{
			name:    "invalid base URL",
			config:  valid(func(c *Config) { c.BaseURL = "http://[::1]:namedport" }),
			wantErr: true,
		},
		{
			name:    "invalid temperature",
			config:  valid(func(c *Config) { c.DefaultTemperature = 3.0 }),
			wantErr: true,
		},
		{
			name:    "invalid top_p",
			config:  valid(func(c *Config) { c.DefaultTopP = 1.2 }),
			wantErr: true,
		},
		{
			name:    "negative max tokens",
			config:  valid(func(c *Config) { c.MaxTokens = -1 }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFactory_RoundTripsProviderConfig(t *testing.T) {
	factory := NewFactory()
	cfg := factory.DefaultConfig()
	cfg.APIKey = testAPIKey
	cfg.Headers["OpenAI-Organization"] = "org-1"

	if err := factory.ValidateConfig(cfg); err != nil {
		t.Fatalf("ValidateConfig() error = %v", err)
	}

	back := FromProviderConfig(cfg)
	if back.OrganizationID != "org-1" || back.DefaultTopP != DefaultTopP || back.APIKey != testAPIKey {
		t.Errorf("Unexpected config %+v", back)
	}

	registry := ai.NewRegistry()
	if err := Register(registry); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	provider, err := registry.Create("openai", cfg)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("Name() = %s", provider.Name())
	}
}
