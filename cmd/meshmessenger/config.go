package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meshmessenger/meshmessenger/internal/config"
	"github.com/meshmessenger/meshmessenger/internal/theme"
)

var configOpts struct {
	force bool
}

// configCmd represents the config command group.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun(cmd, args)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the effective configuration (file values over defaults) as TOML.`,
	Args:  cobra.NoArgs,
	RunE:  configShowRun,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration to the config path and create the user
palettes directory. An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: configInitRun,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVarP(&configOpts.force, "force", "f", false,
		"Overwrite an existing config file")

	rootCmd.AddCommand(configCmd)
}

func configShowRun(cmd *cobra.Command, args []string) error {
	data, err := getConfig().Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func configInitRun(cmd *cobra.Command, args []string) error {
	path := globalOpts.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	if path == "" {
		return errors.New("cannot determine config path; use --config")
	}

	if _, err := os.Stat(path); err == nil && !configOpts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

	loader := theme.NewLoader(config.PalettesPath(), logger)
	if err := loader.CreatePalettesDir(); err != nil {
		logger.Warn("failed to create palettes directory", "error", err)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Palettes directory: %s\n", loader.Dir())
	}
	return nil
}
