package hyprkeys

import (
	"errors"
	"strings"

	"github.com/jward/hyprkeys/internal/parse"
	"github.com/jward/hyprkeys/internal/store"
)

// Public type aliases for internal types used in the Engine and
// QueryBuilder API.

type Section = parse.Section
type KeyBinding = parse.KeyBinding
type Store = store.Store
type File = store.File
type ProgramCount = store.ProgramCount

// FlatBinding is a keybinding together with the path of the section that
// declares it, names joined with " > ".
type FlatBinding struct {
	Section string `json:"section"`
	KeyBinding
	// Programs lists what an exec bind launches. Only QueryBuilder fills it.
	Programs []string `json:"programs,omitempty"`
}

// PathSeparator joins section names in FlatBinding.Section.
const PathSeparator = " > "

var (
	// ErrNotFound is returned when an input file or indexed file does not exist.
	ErrNotFound = errors.New("hyprkeys: not found")
	// ErrInvalidUTF8 is returned when a config file is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("hyprkeys: invalid UTF-8")
	// ErrNoDatabase is returned by indexing and queries on an Engine made
	// with NewParser.
	ErrNoDatabase = errors.New("hyprkeys: engine has no database")
)

// Flatten lists every binding in secs in file order with its section path.
func Flatten(secs []Section) []FlatBinding {
	out := []FlatBinding{}
	for _, root := range secs {
		root.Walk(func(path []string, sec Section) {
			name := strings.Join(path, PathSeparator)
			for _, kb := range sec.Keybinds {
				out = append(out, FlatBinding{Section: name, KeyBinding: kb})
			}
		})
	}
	return out
}
