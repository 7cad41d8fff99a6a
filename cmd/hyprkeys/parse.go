package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagSymbols bool

var parseCmd = &cobra.Command{
	Use:   "parse [path]",
	Short: "Print the keybinding tree of a Hyprland config",
	Long:  "Parses a Hyprland config and prints its sections and keybindings. JSON output is compact with no trailing newline, ready for widgets that read it from a subprocess.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&flagSymbols, "symbols", false, "show key symbols in text output (default: display.symbols from config)")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := resolveKeybindsPath(args)
	if flagDebug {
		fmt.Fprintf(os.Stderr, "Parsing keybinds from: %s\n", path)
	}

	secs, err := parseKeybinds(cmd, path)
	if err != nil {
		return err
	}
	if flagDebug {
		fmt.Fprintf(os.Stderr, "Found %d top-level sections\n", len(secs))
	}

	if flagFormat == "text" {
		symbols := flagSymbols || cfg.Display.Symbols
		formatSectionsText(os.Stdout, secs, substitutions(symbols))
		return nil
	}

	data, err := json.Marshal(secs)
	if err != nil {
		return fmt.Errorf("encoding sections: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
