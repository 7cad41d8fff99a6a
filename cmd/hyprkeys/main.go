package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jward/hyprkeys"
	"github.com/jward/hyprkeys/internal/config"
	"github.com/jward/hyprkeys/internal/logging"
)

var (
	flagConfig string
	flagDB     string
	flagFormat string
	flagDebug  bool
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

// Loaded by the root command's PersistentPreRunE.
var (
	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "hyprkeys",
	Short:         "Hyprland keybinding cheatsheet tool",
	Long:          "Hyprkeys parses the #! section headings and bind lines of a Hyprland config into a tree of sections and keybindings.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(flagFormat); err != nil {
			return err
		}
		return setup()
	},
	// No Run: prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: $XDG_CONFIG_HOME/hyprkeys/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: database_path from config)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "print debug information to stderr")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the config file and builds the logger.
func setup() error {
	c, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = c

	l, err := logging.New(cfg.Log.Level, flagDebug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	logger = l
	return nil
}

// resolveKeybindsPath returns the config file to parse: the first
// argument, or keybinds_path from the config, with ~ and $VAR expanded.
func resolveKeybindsPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return config.ExpandPath(args[0])
	}
	return config.ExpandPath(cfg.KeybindsPath)
}

// resolveDBPath returns the database path from the --db flag or the config.
func resolveDBPath() string {
	if flagDB != "" {
		return config.ExpandPath(flagDB)
	}
	return config.ExpandPath(cfg.DatabasePath)
}

// engineOptions builds the Engine options shared by every command.
func engineOptions() []hyprkeys.Option {
	opts := []hyprkeys.Option{hyprkeys.WithLogger(logger)}
	if cfg.CommentScript != "" {
		opts = append(opts, hyprkeys.WithCommentScript(config.ExpandPath(cfg.CommentScript)))
	}
	return opts
}

// parseKeybinds reads and parses path with the configured comment script.
func parseKeybinds(cmd *cobra.Command, path string) ([]hyprkeys.Section, error) {
	e, err := hyprkeys.NewParser(engineOptions()...)
	if err != nil {
		return nil, err
	}
	return e.ParseFile(cmd.Context(), path)
}

// substitutions returns the key display table, or nil when symbols are off.
func substitutions(symbols bool) *hyprkeys.Substitutions {
	if !symbols {
		return nil
	}
	return hyprkeys.NewSubstitutions(cfg.Display.Substitutions)
}
