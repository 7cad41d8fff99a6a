// Package hyprkeys reads Hyprland configuration files and turns their
// heading markers and bind directives into a tree of sections and
// keybindings.
//
// # Config format
//
// A heading is a line starting at column 0 with one or more '#' followed by
// '!'. The number of '#' sets the depth:
//
//	#!Apps
//	bind = SUPER, Return, exec, kitty
//	##!Browsers
//	bind = SUPER, W, exec, firefox # Web browser
//	#!Windows
//	bind = SUPER, Q, killactive,
//
// Binds belong to the nearest heading above them. A heading of equal or
// shallower depth closes the current section. Binds before the first heading
// are ignored, as are binds whose parameters contain "[hidden]". Text after
// '#' in the parameters becomes the bind's comment; binds without one get a
// generated description. A bind written as "#/# bind = ..." is documented
// without being active in Hyprland.
//
// # Usage
//
// Parse a file without a database:
//
//	e, err := hyprkeys.NewParser()
//	if err != nil { ... }
//	secs, err := e.ParseFile(ctx, "~/.config/hypr/keybinds.conf")
//
// Or index files into SQLite and query them later:
//
//	e, err := hyprkeys.New("keybinds.db")
//	if err != nil { ... }
//	defer e.Close()
//
//	_, err = e.IndexDirectory(ctx, "/home/me/.config/hypr")
//
//	q := e.Query()
//	binds, err := q.Binds("/home/me/.config/hypr/keybinds.conf")
//	progs, err := q.Programs()
//
// # Query API
//
// The [QueryBuilder] returned by [Engine.Query] provides:
//
//   - [QueryBuilder.Files]: indexed files.
//   - [QueryBuilder.Sections]: the section tree of one file, rebuilt from
//     the database.
//   - [QueryBuilder.Binds]: every bind of one file with its section path.
//   - [QueryBuilder.Dispatcher]: binds using a dispatcher, across files.
//   - [QueryBuilder.Programs]: programs started by exec binds with usage
//     counts.
//   - [QueryBuilder.BindsByProgram]: binds starting one program.
//
// [Search] and [FuzzySearch] filter a parsed tree in memory.
//
// # Comment scripts
//
// [WithCommentScript] loads a Risor script that writes comments for binds
// without one. See the internal/runtime package for the globals it sees.
package hyprkeys
