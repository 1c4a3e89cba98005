package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/acevedoonyx/onyx/internal/ai"
	"github.com/acevedoonyx/onyx/internal/config"
	"github.com/acevedoonyx/onyx/internal/intel"
)

// newConfigCommand creates the config command with subcommands
func newConfigCommand(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage Onyx configuration",
		Long: `Manage Onyx configuration files and settings.

The config command provides subcommands for initializing, viewing,
validating, and locating configuration files.`,
	}

	// Add subcommands
	configCmd.AddCommand(newConfigInitCommand(opts))
	configCmd.AddCommand(newConfigShowCommand(opts))
	configCmd.AddCommand(newConfigValidateCommand(opts))
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand(opts *rootOptions) *cobra.Command {
	var (
		outputPath string
		minimal    bool
		resolved   bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new Onyx configuration file with default values.

By default, creates a full configuration file with all options and comments.
Use --minimal for a compact configuration with only essential settings, or
--resolved to write the effective configuration (defaults, config files and
ONYX_* overrides) without comments. The API key is never written.`,
		Example: `  # Create full config in current directory
  onyx config init

  # Create minimal config
  onyx config init --minimal

  # Create config at specific path
  onyx config init --output ~/.config/onyx/config.yaml

  # Snapshot the effective configuration
  ONYX_AI_PROVIDER=openai onyx config init --resolved

  # Overwrite existing config
  onyx config init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Determine output path
			if outputPath == "" {
				outputPath = ".onyx.yaml"
			}

			// Check if file exists and not forcing
			if !force && fileExists(outputPath) {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", outputPath)
			}
			if minimal && resolved {
				return fmt.Errorf("--minimal and --resolved cannot be combined")
			}

			out := cmd.OutOrStdout()
			if resolved {
				cfg, err := opts.loadConfig()
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				cfg.AI.APIKey = ""
				if err := config.Save(cfg, outputPath); err != nil {
					return fmt.Errorf("failed to write config file: %w", err)
				}
				fmt.Fprintf(out, "✅ Configuration file created at: %s\n", outputPath)
				fmt.Fprintln(out, "📄 Wrote the effective configuration (API key omitted)")
				return nil
			}

			// Create directory if needed
			dir := filepath.Dir(outputPath)
			if dir != "." && dir != "/" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			// Get config content
			var content string
			if minimal {
				content = config.MinimalSampleConfig()
			} else {
				content = config.SampleConfig()
			}

			// Write config file
			if err := os.WriteFile(outputPath, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			fmt.Fprintf(out, "✅ Configuration file created at: %s\n", outputPath)
			if minimal {
				fmt.Fprintln(out, "📄 Created minimal configuration with essential settings")
			} else {
				fmt.Fprintln(out, "📄 Created full configuration with all options and documentation")
			}

			return nil
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for config file (default: .onyx.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "create minimal configuration")
	initCmd.Flags().BoolVar(&resolved, "resolved", false, "write the effective configuration instead of the sample")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing config file")

	return initCmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand(opts *rootOptions) *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current effective configuration after loading from all sources.

Shows the merged configuration from all sources including defaults,
config files, and environment variable overrides. The API key is masked.`,
		Example: `  # Show config in YAML format
  onyx config show

  # Show config in JSON format
  onyx config show --format json

  # Show config from specific file
  onyx config show --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.AI.APIKey != "" {
				cfg.AI.APIKey = "********"
			}

			// Format and display configuration
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config to YAML: %w", err)
				}
				fmt.Fprint(out, string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}

			return nil
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand(opts *rootOptions) *cobra.Command {
	var checkProvider bool

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate an Onyx configuration file for syntax and semantic errors.

Checks the configuration file for:
- Valid YAML syntax and known keys
- Valid values for enums
- Usable navigation commands

With --check-provider the configured AI provider is also contacted once to
confirm the endpoint is reachable and the credentials are accepted.`,
		Example: `  # Validate current config
  onyx config validate

  # Also verify the provider accepts the configured key
  onyx config validate --check-provider

  # Validate specific config file
  onyx config validate --config /path/to/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := opts.loadConfig()
			if err != nil {
				fmt.Fprintf(out, "❌ Configuration validation failed:\n")
				fmt.Fprintf(out, "   %v\n", err)
				return err
			}

			// If we get here, validation passed
			fmt.Fprintln(out, "✅ Configuration is valid")

			// Show some basic info about the config
			fmt.Fprintf(out, "📊 Configuration summary:\n")
			fmt.Fprintf(out, "   Version: %s\n", cfg.Version)
			fmt.Fprintf(out, "   AI Provider: %s (%s)\n", cfg.AI.Provider, cfg.AI.Model)
			fmt.Fprintf(out, "   API Key: %s\n", keyState(cfg.AI.APIKey))
			fmt.Fprintf(out, "   Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "   Navigation Commands: %d configured\n", len(cfg.Catalog()))

			if !checkProvider {
				return nil
			}
			if err := checkProviderHealth(cmd.Context(), cfg); err != nil {
				fmt.Fprintf(out, "❌ Provider check failed:\n")
				fmt.Fprintf(out, "   %v\n", err)
				fmt.Fprintf(out, "   %s\n", providerHint(err))
				return err
			}
			fmt.Fprintf(out, "🔌 Provider check: %s is reachable\n", cfg.AI.Provider)

			return nil
		},
	}

	validateCmd.Flags().BoolVar(&checkProvider, "check-provider", false, "contact the AI provider to verify endpoint and credentials")

	return validateCmd
}

// checkProviderHealth builds the configured provider and runs its health check
func checkProviderHealth(ctx context.Context, cfg *config.Config) error {
	registry, err := newRegistry()
	if err != nil {
		return err
	}

	pc := providerConfig(&cfg.AI)
	provider, err := registry.Create(pc.Type, pc)
	if err != nil {
		return err
	}
	defer func() { _ = provider.Close() }()

	timeout := cfg.AI.Timeout
	if timeout <= 0 {
		timeout = intel.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return provider.HealthCheck(ctx)
}

// providerHint suggests a next step for a failed provider check
func providerHint(err error) string {
	switch {
	case ai.IsConfigurationError(err):
		return "Hint: check ai.provider, ai.endpoint and ai.api_key (or $" + config.APIKeyEnv + ")"
	case ai.IsValidationError(err):
		return "Hint: check ai.model and the sampling settings"
	case ai.IsRateLimitError(err):
		return "Hint: the provider is rate limiting this key; try again later"
	case ai.IsRetryableError(err):
		return "Hint: the failure looks transient; try again"
	default:
		return "Hint: the provider rejected the request; check the key's permissions and the model name"
	}
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long: `Display the list of paths Onyx searches for configuration files.

Shows the search order and indicates which files exist.`,
		Example: `  # Show config search paths
  onyx config path`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "📁 Configuration file search paths (in priority order):")
			fmt.Fprintln(out)

			priority := []string{"Highest", "Medium", "Lowest"}
			paths := config.GetConfigPaths()
			for i, path := range paths {
				exists := " ❌ (not found)"
				if fileExists(path) {
					exists = " ✅ (exists)"
				}

				fmt.Fprintf(out, "  %d. %s%s\n", i+1, path, exists)
				if i < len(priority) {
					fmt.Fprintf(out, "     Priority: %s\n", priority[i])
				}
				fmt.Fprintln(out)
			}

			// Show current config file being used
			if currentConfig, found := config.FindConfigFile(); found {
				fmt.Fprintf(out, "🎯 Current config file: %s\n", currentConfig)
			} else {
				fmt.Fprintln(out, "📝 No config file found, using defaults")
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "💡 Environment variables with ONYX_ prefix will override file settings")
			fmt.Fprintf(out, "💡 $%s is used when no API key is configured\n", config.APIKeyEnv)
		},
	}

	return pathCmd
}

func keyState(key string) string {
	if key == "" {
		return "not set (queries will fail until one is configured)"
	}
	return "set"
}

// Helper function to check if file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
