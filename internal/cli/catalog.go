package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acevedoonyx/onyx/internal/formatter"
)

func newCatalogCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the commands the console understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(cfg.Catalog(), formatterOptions(cfg)))
			return nil
		},
	}
}
