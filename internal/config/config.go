package config

import (
	"fmt"
	"time"

	"github.com/acevedoonyx/onyx/internal/terminal"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	AI       AIConfig       `yaml:"ai" json:"ai"`
	Terminal TerminalConfig `yaml:"terminal" json:"terminal"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
}

// AIConfig configures the intelligence provider
type AIConfig struct {
	Provider    string        `yaml:"provider" json:"provider"`       // gemini|openai
	Model       string        `yaml:"model" json:"model"`             // model name/identifier
	Endpoint    string        `yaml:"endpoint" json:"endpoint"`       // API endpoint URL, empty for the provider default
	APIKey      string        `yaml:"api_key" json:"api_key"`         // falls back to $API_KEY
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`         // per-query timeout
	Temperature float64       `yaml:"temperature" json:"temperature"` // sampling temperature
	TopP        float64       `yaml:"top_p" json:"top_p"`             // nucleus sampling cutoff
}

// TerminalConfig configures the console behaviour
type TerminalConfig struct {
	BootScale           float64              `yaml:"boot_scale" json:"boot_scale"`
	DeepDiveDelay       time.Duration        `yaml:"deep_dive_delay" json:"deep_dive_delay"`
	DropStaleCommentary bool                 `yaml:"drop_stale_commentary" json:"drop_stale_commentary"`
	Navigation          terminal.Catalog     `yaml:"navigation" json:"navigation"`
	Contact             terminal.ContactCard `yaml:"contact" json:"contact"`
}

// OutputConfig configures headless output formatting
type OutputConfig struct {
	Format    string `yaml:"format" json:"format"`         // text|json
	ColorMode string `yaml:"color_mode" json:"color_mode"` // auto|always|never
	Emoji     bool   `yaml:"emoji" json:"emoji"`
}

// LoggingConfig configures diagnostics
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"` // debug|info|warn|error
	File  string `yaml:"file" json:"file"`   // required for logs from the full-screen console
	JSON  bool   `yaml:"json" json:"json"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-3-flash-preview",
			Endpoint:    "",
			APIKey:      "",
			Timeout:     60 * time.Second,
			Temperature: 0.7,
			TopP:        0.9,
		},
		Terminal: TerminalConfig{
			BootScale:           1.0,
			DeepDiveDelay:       terminal.DefaultDeepDiveDelay,
			DropStaleCommentary: false,
			Navigation:          terminal.DefaultCatalog(),
			Contact:             terminal.DefaultContactCard(),
		},
		Output: OutputConfig{
			Format:    "text",
			ColorMode: "auto",
			Emoji:     true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	if err := c.validateTerminalConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	return c.validateLoggingConfig()
}

// validateAIConfig validates AI-related configuration
func (c *Config) validateAIConfig() error {
	validProviders := map[string]bool{
		"gemini": true,
		"openai": true,
	}
	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("invalid AI provider: %s (must be one of: gemini, openai)", c.AI.Provider)
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("ai.timeout must be non-negative")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2")
	}
	if c.AI.TopP < 0 || c.AI.TopP > 1 {
		return fmt.Errorf("ai.top_p must be between 0 and 1")
	}
	return nil
}

// validateTerminalConfig validates console configuration
func (c *Config) validateTerminalConfig() error {
	if c.Terminal.BootScale < 0 {
		return fmt.Errorf("terminal.boot_scale must be non-negative")
	}
	if c.Terminal.DeepDiveDelay < 0 {
		return fmt.Errorf("terminal.deep_dive_delay must be non-negative")
	}
	if err := c.Terminal.Navigation.Validate(); err != nil {
		return fmt.Errorf("terminal.navigation: %w", err)
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.Format != "" {
		validFormats := map[string]bool{
			"json": true,
			"text": true,
		}
		if !validFormats[c.Output.Format] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text)", c.Output.Format)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

func (c *Config) validateLoggingConfig() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
}

// Catalog returns the navigation vocabulary, falling back to the built-in one
func (c *Config) Catalog() terminal.Catalog {
	if len(c.Terminal.Navigation) == 0 {
		return terminal.DefaultCatalog()
	}
	return c.Terminal.Navigation
}
