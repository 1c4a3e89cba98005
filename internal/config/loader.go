package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/acevedoonyx/onyx/internal/logger"
)

// APIKeyEnv is the bare credential variable honoured when no other key is set
const APIKeyEnv = "API_KEY"

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.onyx.yaml",               // Project-specific config (highest priority)
	"~/.config/onyx/config.yaml", // User config
	"/etc/onyx/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	log         *logger.Logger
}

// LoaderOption customises a Loader
type LoaderOption func(*Loader)

// WithPaths replaces the search paths
func WithPaths(paths ...string) LoaderOption {
	return func(l *Loader) { l.configPaths = paths }
}

// WithLogger reports unreadable config files through log
func WithLogger(log *logger.Logger) LoaderOption {
	return func(l *Loader) { l.log = log }
}

// NewLoader creates a new config loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		configPaths: ConfigPaths,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. ONYX_* environment variables
// 3. ./.onyx.yaml
// 4. ~/.config/onyx/config.yaml
// 5. /etc/onyx/config.yaml
// 6. Built-in defaults
// 7. $API_KEY, for ai.api_key only and only when still empty
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.log.Warn("skipping unreadable config file",
					logger.F("path", expandedPath),
					logger.Error(err))
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if config.AI.APIKey == "" {
		config.AI.APIKey = os.Getenv(APIKeyEnv)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file on top of config. Keys absent from the
// file keep their current values.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from the fixed search list
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// Decode into a copy so a parse error leaves config untouched
	merged := *config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&merged); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	*config = merged
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// AI Config
		"ONYX_AI_PROVIDER":    func(v string) error { config.AI.Provider = v; return nil },
		"ONYX_AI_MODEL":       func(v string) error { config.AI.Model = v; return nil },
		"ONYX_AI_ENDPOINT":    func(v string) error { config.AI.Endpoint = v; return nil },
		"ONYX_AI_API_KEY":     func(v string) error { config.AI.APIKey = v; return nil },
		"ONYX_AI_TIMEOUT":     func(v string) error { return parseDuration(v, &config.AI.Timeout) },
		"ONYX_AI_TEMPERATURE": func(v string) error { return parseFloat(v, &config.AI.Temperature) },
		"ONYX_AI_TOP_P":       func(v string) error { return parseFloat(v, &config.AI.TopP) },

		// Terminal Config
		"ONYX_TERMINAL_BOOT_SCALE":     func(v string) error { return parseFloat(v, &config.Terminal.BootScale) },
		"ONYX_TERMINAL_DEEP_DIVE_DELAY": func(v string) error { return parseDuration(v, &config.Terminal.DeepDiveDelay) },
		"ONYX_TERMINAL_DROP_STALE_COMMENTARY": func(v string) error {
			return parseBool(v, &config.Terminal.DropStaleCommentary)
		},

		// Output Config
		"ONYX_OUTPUT_FORMAT":     func(v string) error { config.Output.Format = v; return nil },
		"ONYX_OUTPUT_COLOR_MODE": func(v string) error { config.Output.ColorMode = v; return nil },
		"ONYX_OUTPUT_EMOJI":      func(v string) error { return parseBool(v, &config.Output.Emoji) },

		// Logging Config
		"ONYX_LOG_LEVEL": func(v string) error { config.Logging.Level = v; return nil },
		"ONYX_LOG_FILE":  func(v string) error { config.Logging.File = v; return nil },
		"ONYX_LOG_JSON":  func(v string) error { return parseBool(v, &config.Logging.JSON) },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// Save writes config as YAML to path, creating parent directories
func Save(config *Config, path string) error {
	if err := validateConfigPath(path); err != nil {
		return fmt.Errorf("invalid config path: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
