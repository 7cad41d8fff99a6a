package hyprkeys

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// SearchGroup is one section's matching bindings.
type SearchGroup struct {
	Section  string       `json:"section"`
	Keybinds []KeyBinding `json:"keybinds"`
}

// Search returns the bindings of secs that match term, grouped by section
// path in file order. A binding matches when term occurs, ignoring case, in
// its comment, key, any modifier, or the display label of the key or a
// modifier. An empty term matches every binding.
func Search(secs []Section, term string, subs *Substitutions) []SearchGroup {
	term = strings.ToLower(strings.TrimSpace(term))
	groups := []SearchGroup{}
	for _, root := range secs {
		root.Walk(func(path []string, sec Section) {
			var hits []KeyBinding
			for _, kb := range sec.Keybinds {
				if matches(kb, term, subs) {
					hits = append(hits, kb)
				}
			}
			if len(hits) > 0 {
				groups = append(groups, SearchGroup{
					Section:  strings.Join(path, PathSeparator),
					Keybinds: hits,
				})
			}
		})
	}
	return groups
}

func matches(kb KeyBinding, term string, subs *Substitutions) bool {
	contains := func(s string) bool {
		return s != "" && strings.Contains(strings.ToLower(s), term)
	}
	if term == "" {
		return true
	}
	if contains(kb.Comment) || contains(kb.Key) || contains(subs.Key(kb.Key)) {
		return true
	}
	for _, m := range kb.Mods {
		if contains(m) || contains(subs.Key(m)) {
			return true
		}
	}
	return false
}

// FuzzyMatch is a binding ranked by FuzzySearch.
type FuzzyMatch struct {
	FlatBinding
	Score int `json:"score"`
}

// bindingSource adapts flattened bindings to fuzzy.Source. Each binding is
// searched as "section mods key comment".
type bindingSource struct {
	binds []FlatBinding
	subs  *Substitutions
}

func (b bindingSource) String(i int) string {
	fb := b.binds[i]
	return fb.Section + " " + b.subs.Combo(fb.KeyBinding) + " " + fb.Comment
}

func (b bindingSource) Len() int { return len(b.binds) }

// FuzzySearch ranks every binding of secs against term, best match first.
// Bindings that do not match at all are left out.
func FuzzySearch(secs []Section, term string, subs *Substitutions) []FuzzyMatch {
	src := bindingSource{binds: Flatten(secs), subs: subs}
	out := []FuzzyMatch{}
	if strings.TrimSpace(term) == "" {
		for _, fb := range src.binds {
			out = append(out, FuzzyMatch{FlatBinding: fb})
		}
		return out
	}
	for _, m := range fuzzy.FindFrom(term, src) {
		out = append(out, FuzzyMatch{FlatBinding: src.binds[m.Index], Score: m.Score})
	}
	return out
}
