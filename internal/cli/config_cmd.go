package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oh-my-claude/menubar/internal/config"
	"github.com/oh-my-claude/menubar/internal/models"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"settings"},
		Short:   "Manage menu-bar settings",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.settingsFile()
			if err != nil {
				return err
			}
			if config.FileExists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			save := config.SaveSettings
			if opts.settingsPath != "" {
				save = func(s *models.Settings) error { return config.SaveYAML(path, s) }
			}
			if err := save(models.NewSettings()); err != nil {
				return fmt.Errorf("failed to write settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), styleSuccess.Render("✓ ")+"Wrote "+path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the settings and registry file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.settingsFile()
			if err != nil {
				return err
			}
			settings, err := opts.loadSettings()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			registryPath, err := config.RegistryPath(settings)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", styleLabel.Render("settings:"), path)
			fmt.Fprintf(out, "%s %s\n", styleLabel.Render("registry:"), registryPath)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.loadSettings()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}
			data, err := yaml.Marshal(settings)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, pathCmd, showCmd)
	return cmd
}

func (o *rootOptions) settingsFile() (string, error) {
	if o.settingsPath != "" {
		return o.settingsPath, nil
	}
	return config.GlobalSettingsFile()
}
