// Package cli implements the omcbar CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by all subcommands.
type rootOptions struct {
	settingsPath string
	verbose      bool
}

// NewRootCmd builds the omcbar command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "omcbar",
		Short: "Inspect and switch oh-my-claude proxy sessions",
		Long: `omcbar talks to the control API of every running oh-my-claude proxy
session. It lists sessions, switches a session to another provider/model and
reverts it to native Claude, the same operations offered by the menu bar.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "Settings file (default ~/.claude/oh-my-claude/menubar.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log control API traffic to stderr")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newProvidersCmd(opts))
	rootCmd.AddCommand(newRevertCmd(opts))
	rootCmd.AddCommand(newSessionsCmd(opts))
	rootCmd.AddCommand(newSwitchCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
