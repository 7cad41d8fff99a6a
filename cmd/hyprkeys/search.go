package main

import (
	"github.com/spf13/cobra"

	"github.com/jward/hyprkeys"
)

var (
	flagSearchFile string
	flagFuzzy      bool
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find keybindings by comment, key or modifier",
	Long:  "Parses the config and prints the bindings matching term, grouped by section. With --fuzzy, bindings are ranked by fuzzy match score instead.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchFile, "file", "", "config file to search (default: keybinds_path from config)")
	searchCmd.Flags().BoolVar(&flagFuzzy, "fuzzy", false, "rank bindings by fuzzy match")
}

func runSearch(cmd *cobra.Command, args []string) error {
	var fileArgs []string
	if flagSearchFile != "" {
		fileArgs = []string{flagSearchFile}
	}
	secs, err := parseKeybinds(cmd, resolveKeybindsPath(fileArgs))
	if err != nil {
		return outputError("search", err)
	}

	// Labels are always matched so "LMB" finds mouse:272 binds.
	subs := hyprkeys.NewSubstitutions(cfg.Display.Substitutions)

	if flagFuzzy {
		matches := hyprkeys.FuzzySearch(secs, args[0], subs)
		n := len(matches)
		return outputResult(CLIResult{Command: "search", Results: matches, TotalCount: &n})
	}

	groups := hyprkeys.Search(secs, args[0], subs)
	n := 0
	for _, g := range groups {
		n += len(g.Keybinds)
	}
	return outputResult(CLIResult{Command: "search", Results: groups, TotalCount: &n})
}
