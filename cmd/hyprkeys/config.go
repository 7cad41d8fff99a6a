package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jward/hyprkeys/internal/config"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the hyprkeys config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long:  "Writes the default settings to the --config path, or $XDG_CONFIG_HOME/hyprkeys/config.toml. An existing file is kept unless --force is given.",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

// configPath returns the config file named by --config or the default.
func configPath() string {
	if flagConfig != "" {
		return config.ExpandPath(flagConfig)
	}
	return config.ExpandPath(config.DefaultPath())
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if _, err := os.Stat(path); err == nil && !flagConfigForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	def, err := config.Default()
	if err != nil {
		return err
	}
	if err := config.Save(path, def); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
