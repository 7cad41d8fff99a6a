package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jward/hyprkeys"
)

// formatSectionsText prints secs as an indented cheatsheet. Each section
// heading is followed by its bindings, then its subsections one level
// deeper.
func formatSectionsText(w io.Writer, secs []hyprkeys.Section, subs *hyprkeys.Substitutions) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	var walk func(sec hyprkeys.Section, depth int)
	walk = func(sec hyprkeys.Section, depth int) {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(tw, "%s%s\n", indent, sec.Name)
		for _, kb := range sec.Keybinds {
			fmt.Fprintf(tw, "%s  %s\t%s\n", indent, subs.Combo(kb), kb.Comment)
		}
		for _, c := range sec.Children {
			walk(c, depth+1)
		}
	}
	for i, sec := range secs {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		walk(sec, 0)
	}
	tw.Flush()
}

// formatFilesText formats CLIFile results as aligned columns.
func formatFilesText(w io.Writer, files []CLIFile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATH\tLINES\tINDEXED")
	for _, f := range files {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", f.ID, f.Path, f.LineCount, f.LastIndexed)
	}
	tw.Flush()
}

// formatProgramsText formats CLIProgram results as aligned columns.
func formatProgramsText(w io.Writer, progs []CLIProgram) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROGRAM\tBINDS")
	for _, p := range progs {
		fmt.Fprintf(tw, "%s\t%d\n", p.Program, p.Binds)
	}
	tw.Flush()
}

// formatBindsText formats flattened bindings as aligned columns.
func formatBindsText(w io.Writer, binds []hyprkeys.FlatBinding, subs *hyprkeys.Substitutions) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tKEYS\tDISPATCHER\tPROGRAMS\tCOMMENT")
	for _, b := range binds {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			b.Section, subs.Combo(b.KeyBinding), b.Dispatcher, strings.Join(b.Programs, ","), b.Comment)
	}
	tw.Flush()
}

// formatSearchGroupsText prints each matching section path followed by its
// bindings.
func formatSearchGroupsText(w io.Writer, groups []hyprkeys.SearchGroup, subs *hyprkeys.Substitutions) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, g.Section)
		for _, kb := range g.Keybinds {
			fmt.Fprintf(tw, "  %s\t%s\n", subs.Combo(kb), kb.Comment)
		}
	}
	tw.Flush()
}

// formatFuzzyText formats ranked matches as aligned columns.
func formatFuzzyText(w io.Writer, matches []hyprkeys.FuzzyMatch, subs *hyprkeys.Substitutions) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tSECTION\tKEYS\tCOMMENT")
	for _, m := range matches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", m.Score, m.Section, subs.Combo(m.KeyBinding), m.Comment)
	}
	tw.Flush()
}

// displaySubs returns the key labels for text output, or nil when symbols
// are turned off.
func displaySubs() *hyprkeys.Substitutions {
	if cfg == nil {
		return nil
	}
	return substitutions(flagSymbols || cfg.Display.Symbols)
}

// outputResultText dispatches to the text formatter for the result type.
// It writes to os.Stdout.
func outputResultText(result CLIResult) error {
	return writeResultText(os.Stdout, result)
}

func writeResultText(w io.Writer, result CLIResult) error {
	subs := displaySubs()

	switch v := result.Results.(type) {
	case []CLIFile:
		formatFilesText(w, v)
	case []CLIProgram:
		formatProgramsText(w, v)
	case CLIFileSections:
		formatSectionsText(w, v.Sections, subs)
	case []hyprkeys.FlatBinding:
		formatBindsText(w, v, subs)
	case []hyprkeys.SearchGroup:
		formatSearchGroupsText(w, v, subs)
	case []hyprkeys.FuzzyMatch:
		formatFuzzyText(w, v, subs)
	case nil:
	default:
		return fmt.Errorf("unsupported result type for text format: %T", v)
	}

	if result.TotalCount != nil && *result.TotalCount == 0 {
		fmt.Fprintln(w, "No results")
	}
	return nil
}

// validFormats lists accepted values for --format.
var validFormats = []string{"json", "text"}

// validateFormat checks that the --format flag value is recognized.
func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}
