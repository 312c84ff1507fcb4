package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProvidersCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List the providers and models offered for switching",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.loadSettings()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			catalog := settings.Catalog()

			out := cmd.OutOrStdout()
			if asJSON || (!cmd.Flags().Changed("json") && !isTerminal(out)) {
				return printJSON(out, catalog)
			}
			for _, p := range catalog {
				fmt.Fprintln(out, styleBrand.Render(p.Name))
				for _, m := range p.Models {
					fmt.Fprintf(out, "  %-28s %s\n", styleValue.Render(m.ID), styleLabel.Render(m.Label))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}
