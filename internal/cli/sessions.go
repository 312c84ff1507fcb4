package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oh-my-claude/menubar/internal/menu"
	"github.com/oh-my-claude/menubar/internal/models"
	"github.com/oh-my-claude/menubar/internal/tui"
)

func newSessionsCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON bool
		watch  bool
	)

	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"ls", "list"},
		Short:   "List running proxy sessions",
		Long: `List every live proxy session from the registry with its current model.

Output is JSON when --json is given or stdout is not a terminal.
--watch opens a live view that refreshes on the poll interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.newEnv()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			if watch {
				return tui.Run(cmd.Context(), e.surface, e.settings.PollInterval)
			}

			views := e.surface.ListSessions(cmd.Context())
			out := cmd.OutOrStdout()
			if asJSON || (!cmd.Flags().Changed("json") && !isTerminal(out)) {
				return printJSON(out, views)
			}
			printSessions(out, views)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print sessions as JSON")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Open a live session view")
	return cmd
}

func printSessions(w io.Writer, views []models.SessionView) {
	if len(views) == 0 {
		fmt.Fprintln(w, styleHint.Render(menu.NoSessionsTitle))
		return
	}

	fmt.Fprintf(w, "%s\n", styleHeading.Render(fmt.Sprintf("%-10s %-7s %-28s %s", "SESSION", "PORT", "MODEL", "PROJECT")))
	for _, v := range views {
		model := fmt.Sprintf("%-28s", v.CurrentModel(menu.NativeModel))
		switch {
		case !v.Healthy:
			model = badgeOffline.Render(fmt.Sprintf("%-28s", "offline"))
		case v.Switched:
			model = badgeSwitched.Render(model)
		default:
			model = badgeNative.Render(model)
		}
		fmt.Fprintf(w, "%-10s %-7d %s %s\n", v.ShortID(), v.ControlPort, model, styleLabel.Render(v.ProjectName))
	}
}
