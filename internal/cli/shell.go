package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/acevedoonyx/onyx/internal/logger"
	"github.com/acevedoonyx/onyx/internal/ui"
)

func newShellCommand(opts *rootOptions) *cobra.Command {
	var (
		fastBoot  bool
		themeName string
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Open the full-screen console",
		Long: `Open the full-screen Onyx console.

Keys:
  Enter      submit the typed command
  F1-F5      run the matching navigation command
  Esc        return to the dashboard
  PgUp/PgDn  scroll the log
  Ctrl+C     quit

Diagnostics are written to logging.file only, never to the screen.`,
		Example: `  onyx
  onyx shell --theme high-contrast
  onyx shell --fast-boot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme, ok := ui.ThemeByName(themeName)
			if !ok {
				return fmt.Errorf("unknown theme: %s (available: %s)", themeName, strings.Join(ui.GetAvailableThemes(), ", "))
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// stderr belongs to the alternate screen while the console runs
			log := logger.Nop()
			if cfg.Logging.File != "" {
				if log, err = opts.newLogger("shell", cfg); err != nil {
					return err
				}
				defer func() { _ = log.Sync() }()
			}

			client, err := createIntelligence(cfg, log, nil)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			bootScale := -1.0
			if fastBoot {
				bootScale = 0
			}
			console := createConsole(cfg, client, log, bootScale, nil)

			log.Info("console starting", logger.F("provider", cfg.AI.Provider), logger.F("theme", theme.Name))
			return ui.Run(console, ui.Options{
				Theme: theme,
				Plain: cfg.Output.ColorMode == "never",
			})
		},
	}

	cmd.Flags().BoolVar(&fastBoot, "fast-boot", false, "skip the boot sequence delays")
	cmd.Flags().StringVar(&themeName, "theme", "onyx", "color theme ("+strings.Join(ui.GetAvailableThemes(), ", ")+")")

	return cmd
}
