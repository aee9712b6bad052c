package root

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docker/logview/pkg/userconfig"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user configuration",
		Long:  "View and manage the logview defaults stored in ~/.config/logview/config.yaml",
		Example: `  # Show the current configuration
  logview config show

  # Write a config file with the defaults
  logview config init`,
		Args: cobra.NoArgs,
		RunE: flags.runConfigShowCommand,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return flags.runConfigInitCommand(cmd, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		Long:  "Display the current user configuration in YAML format",
		Args:  cobra.NoArgs,
		RunE:  flags.runConfigShowCommand,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the path to the config file",
		Args:  cobra.NoArgs,
		RunE:  flags.runConfigPathCommand,
	})
	cmd.AddCommand(initCmd)

	return cmd
}

func (f *rootFlags) runConfigShowCommand(cmd *cobra.Command, _ []string) error {
	config, err := f.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := config.Marshal()
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (f *rootFlags) runConfigPathCommand(cmd *cobra.Command, _ []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), f.configFile())
	return err
}

func (f *rootFlags) runConfigInitCommand(cmd *cobra.Command, force bool) error {
	path := f.configFile()

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := userconfig.Default().SaveFile(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
	return err
}
