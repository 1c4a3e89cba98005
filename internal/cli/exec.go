package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/acevedoonyx/onyx/internal/formatter"
	"github.com/acevedoonyx/onyx/internal/logger"
	"github.com/acevedoonyx/onyx/internal/monitor"
	"github.com/acevedoonyx/onyx/internal/terminal"
)

func newExecCommand(opts *rootOptions) *cobra.Command {
	var (
		outputFmt string
		withBoot  bool
		stats     bool
	)

	cmd := &cobra.Command{
		Use:   "exec [commands...]",
		Short: "Run console commands without the full-screen interface",
		Long: `Run console commands one after another and print the resulting transcript.

Each argument is one command. Without arguments, commands are read from
stdin, one per line. Every command settles, including its intelligence
query or deep dive, before the next one is submitted.`,
		Example: `  onyx exec help "it work" "query how fast can you ship"
  printf 'help\ncontact\n' | onyx exec --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			commands := args
			if len(commands) == 0 {
				var err error
				if commands, err = readCommands(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if outputFmt == "" {
				outputFmt = cfg.Output.Format
			}
			f, err := formatter.New(outputFmt, formatterOptions(cfg))
			if err != nil {
				return err
			}

			log, err := opts.newLogger("exec", cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			var metrics *monitor.Collector
			if stats {
				metrics = monitor.New()
			}

			client, err := createIntelligence(cfg, log, metrics)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			bootScale := 0.0
			if withBoot {
				bootScale = -1
			}
			console := createConsole(cfg, client, log, bootScale, metrics)
			defer console.Close()

			if err := runCommands(console, commands, log); err != nil {
				return err
			}

			data, err := f.Format(formatter.Snapshot(console.Session()))
			if err != nil {
				return fmt.Errorf("failed to format transcript: %w", err)
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}

			if stats {
				fmt.Fprint(cmd.ErrOrStderr(), "\n"+monitor.FormatText(metrics.Snapshot()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json); defaults to output.format")
	cmd.Flags().BoolVar(&withBoot, "boot", false, "include the boot sequence delays")
	cmd.Flags().BoolVar(&stats, "stats", false, "print operation timings to stderr")

	return cmd
}

// runCommands boots console and submits each command once the previous one
// has settled
func runCommands(console *terminal.Console, commands []string, log *logger.Logger) error {
	console.Boot()
	console.Wait()

	for _, command := range commands {
		if err := console.Submit(command); err != nil {
			return fmt.Errorf("console rejected %q: %w", command, err)
		}
		console.Wait()
	}

	log.Debug("commands settled", logger.Count(len(commands)))
	return nil
}

// readCommands returns the non-blank lines of r
func readCommands(r io.Reader) ([]string, error) {
	var commands []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			commands = append(commands, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commands: %w", err)
	}
	return commands, nil
}
