package parse

// KeyBinding is one bind directive parsed from a configuration line.
type KeyBinding struct {
	Mods       []string `json:"mods"`
	Key        string   `json:"key"`
	Dispatcher string   `json:"dispatcher"`
	Params     string   `json:"params"`
	Comment    string   `json:"comment"`
}

// Section is a named heading in the configuration and everything declared
// beneath it up to the next heading of equal or shallower depth.
type Section struct {
	Name     string       `json:"name"`
	Keybinds []KeyBinding `json:"keybinds"`
	Children []Section    `json:"children"`

	// Depth is the heading's marker length: 2 for "#!", 3 for "##!". The
	// emitted tree can be shallower when a heading skips levels.
	Depth int `json:"-"`
}

func newSection(name string, depth int) Section {
	return Section{
		Name:     name,
		Depth:    depth,
		Keybinds: []KeyBinding{},
		Children: []Section{},
	}
}

// Count returns the number of keybindings in s and all of its descendants.
func (s Section) Count() int {
	n := len(s.Keybinds)
	for _, c := range s.Children {
		n += c.Count()
	}
	return n
}

// Walk calls fn for s and every descendant in file order. path holds the
// names from the outermost section down to the visited one.
func (s Section) Walk(fn func(path []string, sec Section)) {
	s.walk(nil, fn)
}

func (s Section) walk(prefix []string, fn func(path []string, sec Section)) {
	path := append(prefix[:len(prefix):len(prefix)], s.Name)
	fn(path, s)
	for _, c := range s.Children {
		c.walk(path, fn)
	}
}
