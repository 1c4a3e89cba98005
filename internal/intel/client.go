// Package intel is the Onyx Intelligence client: it wraps every free-text
// prompt in the Onyx persona and turns the provider's answer, or its
// failure, into text that can be shown on the console.
package intel

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/go-promptfmt"

	"github.com/acevedoonyx/onyx/internal/ai"
	"github.com/acevedoonyx/onyx/internal/logger"
	"github.com/acevedoonyx/onyx/internal/monitor"
)

const (
	// NullResponse is shown when the provider answers with no text
	NullResponse = "SYSTEM_ERROR: NULL_RESPONSE"

	// CriticalPrefix starts every failure message
	CriticalPrefix = "SYSTEM_CRITICAL_ERROR: "

	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultTimeout     = 60 * time.Second
)

const systemContext = `SYSTEM CONTEXT: You are the ONYX INTELLIGENCE INTERFACE.
ONYX PHILOSOPHY:
1. IT PROBLEM SOLVING: We specialize in finding the "ghost in the machine." We don't just restart servers; we analyze kernel logs, optimize network routing, and eliminate technical debt that causes lag and downtime. We solve problems other IT firms can't even identify.
2. WEB DEVELOPMENT (10X GROWTH): A website is a sales machine, not a digital brochure. We use psychological design, extreme speed optimization (LCP < 1s), and conversion rate optimization (CRO) to 10x lead generation.
3. CYBERSECURITY: Proactive hardening.`

const instruction = "INSTRUCTION: Respond in a technical, elite terminal style. Be persuasive. " +
	"Focus on reliability, ROI, and expertise. Keep it punchy and professional."

// ProviderFunc builds the provider on first use
type ProviderFunc func() (ai.Provider, error)

// Options configures a Client
type Options struct {
	Model string
	// Temperature and TopP fall back to DefaultTemperature and DefaultTopP
	// when nil. Zero is sent as is.
	Temperature *float64
	TopP        *float64
	Timeout     time.Duration
	Logger      *logger.Logger
	// Metrics receives the latency and outcome of every query when set
	Metrics *monitor.Collector
}

// Client answers prompts through a lazily constructed provider. It is safe
// for concurrent use.
type Client struct {
	newProvider ProviderFunc
	opts        Options
	log         *logger.Logger

	mu       sync.Mutex
	provider ai.Provider
}

// New creates a client. newProvider is not called until the first query, so
// a missing credential surfaces as a query failure rather than a startup one.
func New(newProvider ProviderFunc, opts Options) *Client {
	if opts.Temperature == nil {
		opts.Temperature = ai.Float64(DefaultTemperature)
	}
	if opts.TopP == nil {
		opts.TopP = ai.Float64(DefaultTopP)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		newProvider: newProvider,
		opts:        opts,
		log:         log.WithComponent("intel"),
	}
}

// NewWithProvider creates a client around an existing provider
func NewWithProvider(provider ai.Provider, opts Options) *Client {
	return New(func() (ai.Provider, error) { return provider, nil }, opts)
}

// Query returns displayable text for prompt and never fails
func (c *Client) Query(ctx context.Context, prompt string) string {
	text, err := c.Ask(ctx, prompt)
	if err != nil {
		return CriticalPrefix + failureMessage(err)
	}
	if text == "" {
		return NullResponse
	}
	return text
}

// Ask sends prompt to the provider and returns its raw text
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	provider, err := c.getProvider()
	if err != nil {
		c.log.Warn("provider unavailable", logger.Error(err))
		c.opts.Metrics.Record(monitor.OperationQuery, 0, err)
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	built := BuildPrompt(prompt)
	req := &ai.CompletionRequest{
		Prompt:       UserTurn(built),
		SystemPrompt: built.SystemPrompt,
		Model:        c.opts.Model,
		Temperature:  c.opts.Temperature,
		TopP:         c.opts.TopP,
		RequestID:    uuid.NewString(),
	}

	start := time.Now()
	resp, err := provider.Complete(ctx, req)
	c.opts.Metrics.Record(monitor.OperationQuery, time.Since(start), err)
	if err != nil {
		c.log.Error("intelligence query failed",
			logger.F("request_id", req.RequestID),
			logger.F("provider", provider.Name()),
			logger.Duration(time.Since(start)),
			logger.Error(err))
		return "", err
	}

	c.log.Debug("intelligence query settled",
		logger.F("request_id", req.RequestID),
		logger.F("provider", provider.Name()),
		logger.F("model", resp.Model),
		logger.Duration(time.Since(start)))
	return resp.Content, nil
}

// Close releases the provider if one was created
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider == nil {
		return nil
	}
	err := c.provider.Close()
	c.provider = nil
	return err
}

func (c *Client) getProvider() (ai.Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider != nil {
		return c.provider, nil
	}
	if c.newProvider == nil {
		return nil, ai.NewConfigurationError("intel", "provider", "no provider configured")
	}

	provider, err := c.newProvider()
	if err != nil {
		return nil, err
	}
	c.provider = provider
	return provider, nil
}

// BuildPrompt wraps prompt in the Onyx persona
func BuildPrompt(prompt string) *promptfmt.Prompt {
	return promptfmt.New().
		System(systemContext+"\n\n"+instruction).
		User("USER COMMAND: %s", prompt).
		Build()
}

// UserTurn joins the user messages of p. The persona travels separately as
// the system prompt.
func UserTurn(p *promptfmt.Prompt) string {
	var parts []string
	for _, msg := range p.Messages {
		if msg.Role == "user" {
			parts = append(parts, msg.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func failureMessage(err error) string {
	var pe *ai.ProviderError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	var ce *ai.ConfigurationError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "UNKNOWN"
}
