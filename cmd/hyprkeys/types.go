package main

import "github.com/jward/hyprkeys"

// CLIResult is the top-level JSON envelope for query and search commands.
type CLIResult struct {
	Command    string `json:"command"`
	Results    any    `json:"results"`
	TotalCount *int   `json:"total_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// CLIFile is a JSON-friendly file representation.
type CLIFile struct {
	ID          int64  `json:"id"`
	Path        string `json:"path"`
	LineCount   int    `json:"line_count"`
	Snapshot    string `json:"snapshot"`
	LastIndexed string `json:"last_indexed"`
}

// CLIProgram is a launched program with the number of binds starting it.
type CLIProgram struct {
	Program string `json:"program"`
	Binds   int    `json:"binds"`
}

// CLIFileSections is the section tree of one indexed file.
type CLIFileSections struct {
	Path     string              `json:"path"`
	Sections []hyprkeys.Section `json:"sections"`
}
