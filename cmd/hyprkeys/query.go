package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jward/hyprkeys"
	"github.com/jward/hyprkeys/internal/store"
)

var flagDispatcher string

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the keybinding database",
	Long:  "Reads keybindings from a database written by 'hyprkeys index'.",
}

var queryFilesCmd = &cobra.Command{
	Use:   "files",
	Short: "List indexed config files",
	Args:  cobra.NoArgs,
	RunE:  runQueryFiles,
}

var querySectionsCmd = &cobra.Command{
	Use:   "sections [file]",
	Short: "Print the section tree of an indexed file",
	Long:  "Prints the section tree of one indexed file. Defaults to keybinds_path from the config.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQuerySections,
}

var queryBindsCmd = &cobra.Command{
	Use:   "binds [file]",
	Short: "List keybindings with their section paths",
	Long:  "Lists the keybindings of one indexed file, or with --dispatcher every bind using that dispatcher across all indexed files.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQueryBinds,
}

var queryProgramsCmd = &cobra.Command{
	Use:   "programs [program]",
	Short: "List programs launched by exec binds",
	Long:  "Without an argument, lists every launched program with its bind count. With a program name, lists the binds that start it.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQueryPrograms,
}

func init() {
	queryBindsCmd.Flags().StringVar(&flagDispatcher, "dispatcher", "", "list binds using this dispatcher across all files")

	queryCmd.AddCommand(queryFilesCmd)
	queryCmd.AddCommand(querySectionsCmd)
	queryCmd.AddCommand(queryBindsCmd)
	queryCmd.AddCommand(queryProgramsCmd)
}

// openStore opens an existing database read for queries. The caller closes
// the returned store.
func openStore() (*store.Store, error) {
	dbPath := resolveDBPath()
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("database %s not found, run 'hyprkeys index' first", dbPath)
	}
	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// withQuery opens the database, runs fn and reports its error in the
// selected format.
func withQuery(command string, fn func(q *hyprkeys.QueryBuilder) (CLIResult, error)) error {
	s, err := openStore()
	if err != nil {
		return outputError(command, err)
	}
	defer s.Close()

	result, err := fn(hyprkeys.NewQueryBuilder(s))
	if err != nil {
		return outputError(command, err)
	}
	result.Command = command
	return outputResult(result)
}

func runQueryFiles(cmd *cobra.Command, args []string) error {
	return withQuery("files", func(q *hyprkeys.QueryBuilder) (CLIResult, error) {
		files, err := q.Files()
		if err != nil {
			return CLIResult{}, err
		}
		out := make([]CLIFile, 0, len(files))
		for _, f := range files {
			out = append(out, CLIFile{
				ID:          f.ID,
				Path:        f.Path,
				LineCount:   f.LineCount,
				Snapshot:    f.Snapshot,
				LastIndexed: f.LastIndexed.Format(time.RFC3339),
			})
		}
		n := len(out)
		return CLIResult{Results: out, TotalCount: &n}, nil
	})
}

func runQuerySections(cmd *cobra.Command, args []string) error {
	path := resolveKeybindsPath(args)
	return withQuery("sections", func(q *hyprkeys.QueryBuilder) (CLIResult, error) {
		secs, err := q.Sections(path)
		if err != nil {
			return CLIResult{}, err
		}
		return CLIResult{Results: CLIFileSections{Path: path, Sections: secs}}, nil
	})
}

func runQueryBinds(cmd *cobra.Command, args []string) error {
	if flagDispatcher != "" && len(args) > 0 {
		return outputError("binds", fmt.Errorf("--dispatcher searches all files and takes no file argument"))
	}
	return withQuery("binds", func(q *hyprkeys.QueryBuilder) (CLIResult, error) {
		var (
			binds []hyprkeys.FlatBinding
			err   error
		)
		if flagDispatcher != "" {
			binds, err = q.Dispatcher(flagDispatcher)
		} else {
			binds, err = q.Binds(resolveKeybindsPath(args))
		}
		if err != nil {
			return CLIResult{}, err
		}
		n := len(binds)
		return CLIResult{Results: binds, TotalCount: &n}, nil
	})
}

func runQueryPrograms(cmd *cobra.Command, args []string) error {
	return withQuery("programs", func(q *hyprkeys.QueryBuilder) (CLIResult, error) {
		if len(args) > 0 {
			binds, err := q.BindsByProgram(args[0])
			if err != nil {
				return CLIResult{}, err
			}
			n := len(binds)
			return CLIResult{Results: binds, TotalCount: &n}, nil
		}

		counts, err := q.Programs()
		if err != nil {
			return CLIResult{}, err
		}
		out := make([]CLIProgram, 0, len(counts))
		for _, c := range counts {
			out = append(out, CLIProgram{Program: c.Program, Binds: c.Count})
		}
		n := len(out)
		return CLIResult{Results: out, TotalCount: &n}, nil
	})
}

// outputResult writes a result in the selected format.
func outputResult(result CLIResult) error {
	if flagFormat == "text" {
		return outputResultText(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can pass it on to Cobra. JSON mode writes a CLIResult envelope to stdout;
// text mode writes to stderr.
func outputError(command string, err error) error {
	errorHandled = true
	if flagFormat == "text" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Error: err.Error()})
	return err
}
