package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oh-my-claude/menubar/internal/models"
)

func newSwitchCmd(opts *rootOptions) *cobra.Command {
	var (
		port  int
		force bool
	)

	cmd := &cobra.Command{
		Use:   "switch <session> <provider> <model>",
		Short: "Route a session to another provider and model",
		Long: `Route a session's traffic to provider/model.

<session> is a session id or a unique prefix of one. Run 'omcbar providers'
for the available provider and model ids. Use --force to send a pair the
catalog does not list.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.newEnv()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			if err := e.surface.CheckModel(args[1], args[2]); err != nil {
				if !force {
					return fmt.Errorf("%w (use --force to send it anyway)", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), styleWarning.Render("! ")+err.Error())
			}

			sessionID, controlPort, err := resolveSession(cmd.Context(), e, args[0], port)
			if err != nil {
				return err
			}

			resp, err := e.surface.SwitchModel(cmd.Context(), controlPort, sessionID, args[1], args[2])
			if err != nil {
				return fmt.Errorf("failed to switch session: %w", err)
			}
			printSwitchResult(cmd, resp, fmt.Sprintf("Switched to %s/%s", args[1], args[2]))
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Control port of the session (skips the registry lookup)")
	cmd.Flags().BoolVar(&force, "force", false, "Send a provider/model pair that is not in the catalog")
	return cmd
}

func newRevertCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "revert <session>",
		Short: "Route a session back to native Claude",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.newEnv()
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			sessionID, controlPort, err := resolveSession(cmd.Context(), e, args[0], port)
			if err != nil {
				return err
			}

			resp, err := e.surface.RevertModel(cmd.Context(), controlPort, sessionID)
			if err != nil {
				return fmt.Errorf("failed to revert session: %w", err)
			}
			printSwitchResult(cmd, resp, "Reverted to Claude")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Control port of the session (skips the registry lookup)")
	return cmd
}

// resolveSession maps a session argument to a full id and control port.
// With an explicit port the argument is used verbatim.
func resolveSession(ctx context.Context, e *env, arg string, port int) (string, int, error) {
	if port > 0 {
		return arg, port, nil
	}
	v, err := e.surface.FindSession(ctx, arg)
	if err != nil {
		return "", 0, err
	}
	return v.SessionID, v.ControlPort, nil
}

func printSwitchResult(cmd *cobra.Command, resp *models.SwitchResponse, fallback string) {
	out := cmd.OutOrStdout()
	msg := resp.Message
	if msg == "" {
		msg = fallback
	}
	fmt.Fprintln(out, styleSuccess.Render("✓ ")+msg)
	if resp.Warning != "" {
		fmt.Fprintln(out, styleWarning.Render("! ")+resp.Warning)
	}
}
