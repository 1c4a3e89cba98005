package cli

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/acevedoonyx/onyx/internal/config"
	"github.com/acevedoonyx/onyx/internal/formatter"
	"github.com/acevedoonyx/onyx/internal/logger"
	"github.com/acevedoonyx/onyx/internal/ui"
)

// rootOptions carries the persistent flags to every subcommand
type rootOptions struct {
	cfgFile string
	verbose bool
	noColor bool
	noEmoji bool
}

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "onyx",
		Short: "Onyx consultancy console",
		Long: `Onyx is a terminal console for an IT consultancy. Type commands to browse
its service areas, run deep dives, or ask Onyx Intelligence free-form questions.

Run without a subcommand to open the full-screen console.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				opts.noEmoji = true
			}
		},
	}

	shellCmd := newShellCommand(opts)
	rootCmd.RunE = shellCmd.RunE
	rootCmd.Flags().AddFlagSet(shellCmd.Flags())

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&opts.noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")

	// Add subcommands
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(newQueryCommand(opts))
	rootCmd.AddCommand(newExecCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))
	rootCmd.AddCommand(newCatalogCommand(opts))
	rootCmd.AddCommand(newConfigCommand(opts))
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Onyx %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadConfig loads the effective configuration and folds the global flags
// into it
func (o *rootOptions) loadConfig() (*config.Config, error) {
	loader := config.NewLoader(config.WithLogger(o.bootstrapLogger()))
	cfg, err := loader.LoadConfig(o.cfgFile)
	if err != nil {
		return nil, err
	}

	if o.noColor {
		cfg.Output.ColorMode = "never"
	}
	if o.noEmoji {
		cfg.Output.Emoji = false
	}
	applyColorMode(cfg.Output.ColorMode)
	return cfg, nil
}

// bootstrapLogger reports problems found while the config is still loading
func (o *rootOptions) bootstrapLogger() *logger.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	log, err := logger.New("config", logger.Options{Level: level})
	if err != nil {
		return logger.Nop()
	}
	return log
}

// newLogger builds the component logger described by cfg
func (o *rootOptions) newLogger(component string, cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(component, logger.Options{
		Level:   cfg.Logging.Level,
		Verbose: o.verbose,
		File:    cfg.Logging.File,
		JSON:    cfg.Logging.JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// formatterOptions maps the output section onto formatter options
func formatterOptions(cfg *config.Config) formatter.Options {
	return formatter.Options{
		Color: cfg.Output.ColorMode != "never" && !ui.IsColorDisabled(),
		Emoji: cfg.Output.Emoji,
	}
}

// applyColorMode pins the lipgloss color profile for always/never and leaves
// terminal detection in charge otherwise
func applyColorMode(mode string) {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
