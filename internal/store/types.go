package store

import "time"

// File is one indexed configuration file.
type File struct {
	ID          int64
	Path        string
	Hash        string
	ScriptHash  string // comment script the file was indexed with, "" for none
	LineCount   int
	Snapshot    string
	LastIndexed time.Time
}

// Section is a heading in an indexed file. Level is the nesting level in
// the emitted tree, 0 for top-level sections.
type Section struct {
	ID       int64
	FileID   int64
	ParentID *int64
	Name     string
	Level    int
	Depth    int // heading marker length in the source
	Ordinal  int
}

type Keybind struct {
	ID         int64
	SectionID  int64
	Ordinal    int
	Mods       []string
	Key        string
	Dispatcher string
	Params     string
	Comment    string
}

// BindProgram records a program started by an exec-style keybind.
type BindProgram struct {
	ID        int64
	KeybindID int64
	Program   string
}

// ProgramCount is the number of keybinds launching a program.
type ProgramCount struct {
	Program string
	Count   int
}
