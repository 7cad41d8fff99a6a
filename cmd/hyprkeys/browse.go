package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jward/hyprkeys/internal/browse"
)

var browseCmd = &cobra.Command{
	Use:   "browse [path]",
	Short: "Browse keybindings in an interactive terminal view",
	Long:  "Opens a filterable tree of sections and keybindings. Tab switches between the filter and the tree, Enter folds a section and Esc quits.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	path := resolveKeybindsPath(args)
	secs, err := parseKeybinds(cmd, path)
	if err != nil {
		return err
	}
	return browse.New(filepath.Base(path), secs, substitutions(cfg.Display.Symbols)).Run()
}
