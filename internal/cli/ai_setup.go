package cli

import (
	"fmt"
	"strings"

	"github.com/acevedoonyx/onyx/internal/ai"
	"github.com/acevedoonyx/onyx/internal/ai/providers/gemini"
	"github.com/acevedoonyx/onyx/internal/ai/providers/openai"
	"github.com/acevedoonyx/onyx/internal/config"
	"github.com/acevedoonyx/onyx/internal/intel"
	"github.com/acevedoonyx/onyx/internal/logger"
	"github.com/acevedoonyx/onyx/internal/monitor"
	"github.com/acevedoonyx/onyx/internal/terminal"
)

// newRegistry returns a registry holding every built-in provider
func newRegistry() (*ai.Registry, error) {
	registry := ai.NewRegistry()
	for _, register := range []func(*ai.Registry) error{gemini.Register, openai.Register} {
		if err := register(registry); err != nil {
			return nil, fmt.Errorf("failed to register AI provider: %w", err)
		}
	}
	return registry, nil
}

// providerConfig maps the ai config section onto a provider configuration
func providerConfig(aiConfig *config.AIConfig) *ai.ProviderConfig {
	name := strings.ToLower(aiConfig.Provider)
	return &ai.ProviderConfig{
		Name:               name,
		Type:               name,
		APIKey:             aiConfig.APIKey,
		BaseURL:            aiConfig.Endpoint,
		DefaultModel:       aiConfig.Model,
		DefaultTemperature: ai.Float64(aiConfig.Temperature),
		DefaultTopP:        ai.Float64(aiConfig.TopP),
		Timeout:            aiConfig.Timeout,
	}
}

// createIntelligence builds the intelligence client. The provider itself is
// created on the first query so a missing API key is reported on screen.
func createIntelligence(cfg *config.Config, log *logger.Logger, metrics *monitor.Collector) (*intel.Client, error) {
	registry, err := newRegistry()
	if err != nil {
		return nil, err
	}

	pc := providerConfig(&cfg.AI)
	if !registry.IsRegistered(pc.Type) {
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.AI.Provider)
	}

	return intel.New(func() (ai.Provider, error) {
		return registry.Create(pc.Type, pc)
	}, intel.Options{
		Model:       cfg.AI.Model,
		Temperature: ai.Float64(cfg.AI.Temperature),
		TopP:        ai.Float64(cfg.AI.TopP),
		Timeout:     cfg.AI.Timeout,
		Logger:      log,
		Metrics:     metrics,
	}), nil
}

// createConsole builds a console from the terminal section. bootScale
// overrides terminal.boot_scale when non-negative.
func createConsole(cfg *config.Config, intelligence terminal.Intelligence, log *logger.Logger, bootScale float64, metrics *monitor.Collector) *terminal.Console {
	if bootScale < 0 {
		bootScale = cfg.Terminal.BootScale
	}

	return terminal.NewConsole(intelligence, terminal.ConsoleOptions{
		Options: terminal.Options{
			Catalog:             cfg.Catalog(),
			Contact:             cfg.Terminal.Contact,
			DeepDiveDelay:       cfg.Terminal.DeepDiveDelay,
			DropStaleCommentary: cfg.Terminal.DropStaleCommentary,
			Logger:              log,
			Metrics:             metrics,
		},
		BootSequence: terminal.ScaleBootSequence(terminal.DefaultBootSequence(), bootScale),
	})
}
