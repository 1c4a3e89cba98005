package intel

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acevedoonyx/onyx/internal/ai"
	"github.com/acevedoonyx/onyx/internal/ai/providers/gemini"
)

type fakeProvider struct {
	mu       sync.Mutex
	requests []*ai.CompletionRequest
	content  string
	err      error
	block    bool
	closed   bool
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &ai.CompletionResponse{Content: f.content, Model: "fake-1"}, nil
}

func (f *fakeProvider) HealthCheck(context.Context) error { return nil }
func (f *fakeProvider) ValidateConfig() error             { return nil }

func (f *fakeProvider) Close() error {
	f.closed = true
	return nil
}

func TestQuery_Success(t *testing.T) {
	provider := &fakeProvider{content: "ROOT CAUSE ISOLATED."}
	client := NewWithProvider(provider, Options{})

	got := client.Query(context.Background(), "why is prod slow")

	assert.Equal(t, "ROOT CAUSE ISOLATED.", got)
	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, "USER COMMAND: why is prod slow", req.Prompt)
	assert.NotContains(t, req.Prompt, "ONYX PHILOSOPHY")
	assert.Contains(t, req.SystemPrompt, "ONYX INTELLIGENCE INTERFACE")
	assert.Contains(t, req.SystemPrompt, "elite terminal style")
	require.NotNil(t, req.Temperature)
	require.NotNil(t, req.TopP)
	assert.InDelta(t, 0.7, *req.Temperature, 1e-9)
	assert.InDelta(t, 0.9, *req.TopP, 1e-9)
	_, err := uuid.Parse(req.RequestID)
	assert.NoError(t, err)
}

func TestQuery_EmptyResponse(t *testing.T) {
	client := NewWithProvider(&fakeProvider{content: ""}, Options{})
	assert.Equal(t, NullResponse, client.Query(context.Background(), "x"))

	blank := NewWithProvider(&fakeProvider{content: "   \n"}, Options{})
	assert.Equal(t, "   \n", blank.Query(context.Background(), "x"), "only empty text is a null response")
}

func TestQuery_ZeroSampling(t *testing.T) {
	provider := &fakeProvider{content: "ok"}
	client := NewWithProvider(provider, Options{Temperature: ai.Float64(0), TopP: ai.Float64(0.5)})

	client.Query(context.Background(), "x")

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	require.NotNil(t, req.Temperature)
	assert.Zero(t, *req.Temperature)
	require.NotNil(t, req.TopP)
	assert.InDelta(t, 0.5, *req.TopP, 1e-9)
}

func TestQuery_GeminiSendsPersonaOnce(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"role": "model", "parts": [{"text": "ACK"}]}}]}`))
	}))
	defer server.Close()

	cfg := gemini.DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = server.URL + "/"
	provider, err := gemini.New(cfg)
	require.NoError(t, err)

	client := NewWithProvider(provider, Options{})
	defer func() { _ = client.Close() }()

	assert.Equal(t, "ACK", client.Query(context.Background(), "audit the perimeter"))
	assert.Equal(t, 1, strings.Count(body, "ONYX PHILOSOPHY"), body)
	assert.NotContains(t, body, "System: ")
	assert.Contains(t, body, "USER COMMAND: audit the perimeter")
}

func TestQuery_Failure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: "SYSTEM_CRITICAL_ERROR: connection refused",
		},
		{
			name: "provider error shows its message",
			err:  ai.NewStatusError("gemini", 403, "API key not valid"),
			want: "SYSTEM_CRITICAL_ERROR: API key not valid",
		},
		{
			name: "empty message",
			err:  errors.New(""),
			want: "SYSTEM_CRITICAL_ERROR: UNKNOWN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewWithProvider(&fakeProvider{err: tt.err}, Options{})

			got := client.Query(context.Background(), "x")

			assert.Equal(t, tt.want, got)
			assert.Contains(t, got, "ERROR")
		})
	}
}

func TestQuery_MissingKeySurfacesAtQueryTime(t *testing.T) {
	var calls int
	client := New(func() (ai.Provider, error) {
		calls++
		return gemini.New(gemini.DefaultConfig())
	}, Options{})
	assert.Zero(t, calls, "provider must not be built eagerly")

	got := client.Query(context.Background(), "hello")

	assert.Equal(t, CriticalPrefix+"API key is required", got)
	assert.Equal(t, 1, calls)

	client.Query(context.Background(), "hello")
	assert.Equal(t, 2, calls, "failed construction is retried")
}

func TestQuery_ProviderBuiltOnce(t *testing.T) {
	var calls int
	provider := &fakeProvider{content: "ok"}
	client := New(func() (ai.Provider, error) {
		calls++
		return provider, nil
	}, Options{Model: "custom"})

	client.Query(context.Background(), "a")
	client.Query(context.Background(), "b")

	assert.Equal(t, 1, calls)
	require.Len(t, provider.requests, 2)
	assert.Equal(t, "custom", provider.requests[1].Model)

	require.NoError(t, client.Close())
	assert.True(t, provider.closed)
}

func TestQuery_Timeout(t *testing.T) {
	client := NewWithProvider(&fakeProvider{block: true}, Options{Timeout: 10 * time.Millisecond})

	got := client.Query(context.Background(), "x")

	assert.Equal(t, CriticalPrefix+context.DeadlineExceeded.Error(), got)
}

func TestQuery_NoProvider(t *testing.T) {
	client := New(nil, Options{})
	assert.Equal(t, CriticalPrefix+"no provider configured", client.Query(context.Background(), "x"))
}

func TestAsk_ReturnsRawError(t *testing.T) {
	boom := errors.New("boom")
	client := NewWithProvider(&fakeProvider{err: boom}, Options{})

	_, err := client.Ask(context.Background(), "x")

	assert.ErrorIs(t, err, boom)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("deploy 100% uptime")

	assert.Equal(t, "USER COMMAND: deploy 100% uptime", UserTurn(prompt))
	assert.Contains(t, prompt.SystemPrompt, "CYBERSECURITY: Proactive hardening.")
}
