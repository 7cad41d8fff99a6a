package hyprkeys

import "strings"

// DefaultSubstitutions maps key and modifier names to the labels shown in
// cheatsheet output.
var DefaultSubstitutions = map[string]string{
	"Super":      "󰖳",
	"mouse_up":   "Scroll ↓",
	"mouse_down": "Scroll ↑",
	"mouse:272":  "LMB",
	"mouse:273":  "RMB",
	"mouse:275":  "MouseBack",
	"Slash":      "/",
	"Hash":       "#",
}

// Substitutions looks up display labels for key names. Lookups try the
// exact name first and then ignore case, so "SUPER" finds "Super".
type Substitutions struct {
	exact map[string]string
	fold  map[string]string
}

// NewSubstitutions merges extra over DefaultSubstitutions.
func NewSubstitutions(extra map[string]string) *Substitutions {
	s := &Substitutions{
		exact: make(map[string]string, len(DefaultSubstitutions)+len(extra)),
		fold:  make(map[string]string, len(DefaultSubstitutions)+len(extra)),
	}
	for _, m := range []map[string]string{DefaultSubstitutions, extra} {
		for k, v := range m {
			s.exact[k] = v
			s.fold[strings.ToLower(k)] = v
		}
	}
	return s
}

// Key returns the display label for name, or name itself.
func (s *Substitutions) Key(name string) string {
	if s == nil {
		return name
	}
	if v, ok := s.exact[name]; ok {
		return v
	}
	if v, ok := s.fold[strings.ToLower(name)]; ok {
		return v
	}
	return name
}

// Combo renders a binding's keys as "MOD + MOD + KEY" using display labels.
func (s *Substitutions) Combo(kb KeyBinding) string {
	parts := make([]string, 0, len(kb.Mods)+1)
	for _, m := range kb.Mods {
		parts = append(parts, s.Key(m))
	}
	if kb.Key != "" {
		parts = append(parts, s.Key(kb.Key))
	}
	return strings.Join(parts, " + ")
}
