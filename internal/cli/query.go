package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newQueryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "query <prompt...>",
		Short: "Ask Onyx Intelligence a single question",
		Long: `Send one prompt to Onyx Intelligence and print the answer.

Provider failures are printed the same way the console shows them and do
not change the exit status.`,
		Example: `  onyx query why does our checkout page take 6 seconds
  API_KEY=... onyx query "harden a fresh VPS"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := opts.newLogger("query", cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			client, err := createIntelligence(cfg, log, nil)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			answer := client.Query(cmd.Context(), strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
}
