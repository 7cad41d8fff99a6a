package hyprkeys

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jward/hyprkeys/internal/parse"
	"github.com/jward/hyprkeys/internal/store"
)

// QueryBuilder provides a read API over indexed config files.
type QueryBuilder struct {
	store *store.Store
}

// NewQueryBuilder wraps an open Store.
func NewQueryBuilder(s *Store) *QueryBuilder {
	return &QueryBuilder{store: s}
}

func (q *QueryBuilder) check(op string) error {
	if q.store == nil {
		return fmt.Errorf("%w: %s", ErrNoDatabase, op)
	}
	return nil
}

// Files returns every indexed file ordered by path.
func (q *QueryBuilder) Files() ([]*File, error) {
	if err := q.check("files"); err != nil {
		return nil, err
	}
	files, err := q.store.Files()
	if err != nil {
		return nil, fmt.Errorf("hyprkeys: files: %w", err)
	}
	return files, nil
}

func (q *QueryBuilder) file(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("hyprkeys: %w", err)
	}
	f, err := q.store.FileByPath(abs)
	if err != nil {
		return nil, fmt.Errorf("hyprkeys: lookup file: %w", err)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %s is not indexed", ErrNotFound, abs)
	}
	return f, nil
}

// sectionTree holds a file's section rows linked parent to children.
type sectionTree struct {
	roots    []int64
	children map[int64][]int64
	byID     map[int64]*store.Section
}

// Rows arrive parents first with siblings in order, so each child list
// is filled in file order.
func newSectionTree(rows []*store.Section) sectionTree {
	t := sectionTree{
		children: make(map[int64][]int64),
		byID:     make(map[int64]*store.Section, len(rows)),
	}
	for _, r := range rows {
		t.byID[r.ID] = r
		if r.ParentID == nil {
			t.roots = append(t.roots, r.ID)
		} else {
			t.children[*r.ParentID] = append(t.children[*r.ParentID], r.ID)
		}
	}
	return t
}

// order returns each section's position in a depth-first walk, which is
// the order the headings appear in the file.
func (t sectionTree) order() map[int64]int {
	rank := make(map[int64]int, len(t.byID))
	var visit func(id int64)
	visit = func(id int64) {
		rank[id] = len(rank)
		for _, c := range t.children[id] {
			visit(c)
		}
	}
	for _, id := range t.roots {
		visit(id)
	}
	return rank
}

func (q *QueryBuilder) fileData(op, path string) (sectionTree, []*store.Keybind, error) {
	if err := q.check(op); err != nil {
		return sectionTree{}, nil, err
	}
	f, err := q.file(path)
	if err != nil {
		return sectionTree{}, nil, err
	}
	rows, err := q.store.SectionsByFile(f.ID)
	if err != nil {
		return sectionTree{}, nil, fmt.Errorf("hyprkeys: %s: %w", op, err)
	}
	kbs, err := q.store.KeybindsByFile(f.ID)
	if err != nil {
		return sectionTree{}, nil, fmt.Errorf("hyprkeys: %s: %w", op, err)
	}
	return newSectionTree(rows), kbs, nil
}

// Sections rebuilds the section tree of an indexed file. The result has
// the same shape and order as parsing the file did.
func (q *QueryBuilder) Sections(path string) ([]Section, error) {
	tree, kbs, err := q.fileData("sections", path)
	if err != nil {
		return nil, err
	}

	binds := make(map[int64][]KeyBinding)
	for _, kb := range kbs {
		binds[kb.SectionID] = append(binds[kb.SectionID], toKeyBinding(kb))
	}

	var build func(id int64) Section
	build = func(id int64) Section {
		sec := Section{
			Name:     tree.byID[id].Name,
			Depth:    tree.byID[id].Depth,
			Keybinds: binds[id],
			Children: []Section{},
		}
		if sec.Keybinds == nil {
			sec.Keybinds = []KeyBinding{}
		}
		for _, c := range tree.children[id] {
			sec.Children = append(sec.Children, build(c))
		}
		return sec
	}

	out := make([]Section, 0, len(tree.roots))
	for _, id := range tree.roots {
		out = append(out, build(id))
	}
	return out, nil
}

// Binds returns every bind of an indexed file in file order, with its
// section path and launched programs.
func (q *QueryBuilder) Binds(path string) ([]FlatBinding, error) {
	tree, kbs, err := q.fileData("binds", path)
	if err != nil {
		return nil, err
	}
	rank := tree.order()
	sort.SliceStable(kbs, func(i, j int) bool {
		a, b := kbs[i], kbs[j]
		if rank[a.SectionID] != rank[b.SectionID] {
			return rank[a.SectionID] < rank[b.SectionID]
		}
		return a.Ordinal < b.Ordinal
	})
	return q.flatten(kbs)
}

// Dispatcher returns binds using dispatcher, compared case-insensitively,
// across all indexed files.
func (q *QueryBuilder) Dispatcher(dispatcher string) ([]FlatBinding, error) {
	if err := q.check("dispatcher"); err != nil {
		return nil, err
	}
	kbs, err := q.store.KeybindsByDispatcher(dispatcher)
	if err != nil {
		return nil, fmt.Errorf("hyprkeys: dispatcher: %w", err)
	}
	return q.flatten(kbs)
}

// Programs returns the programs started by exec binds, most used first.
func (q *QueryBuilder) Programs() ([]ProgramCount, error) {
	if err := q.check("programs"); err != nil {
		return nil, err
	}
	counts, err := q.store.ProgramCounts()
	if err != nil {
		return nil, fmt.Errorf("hyprkeys: programs: %w", err)
	}
	if counts == nil {
		counts = []ProgramCount{}
	}
	return counts, nil
}

// BindsByProgram returns the binds that start program.
func (q *QueryBuilder) BindsByProgram(program string) ([]FlatBinding, error) {
	if err := q.check("binds by program"); err != nil {
		return nil, err
	}
	kbs, err := q.store.KeybindsByProgram(program)
	if err != nil {
		return nil, fmt.Errorf("hyprkeys: binds by program: %w", err)
	}
	return q.flatten(kbs)
}

func (q *QueryBuilder) flatten(kbs []*store.Keybind) ([]FlatBinding, error) {
	paths := make(map[int64]string)
	out := make([]FlatBinding, 0, len(kbs))
	for _, kb := range kbs {
		p, ok := paths[kb.SectionID]
		if !ok {
			names, err := q.store.SectionPath(kb.SectionID)
			if err != nil {
				return nil, fmt.Errorf("hyprkeys: %w", err)
			}
			p = strings.Join(names, PathSeparator)
			paths[kb.SectionID] = p
		}
		progs, err := q.store.ProgramsByKeybind(kb.ID)
		if err != nil {
			return nil, fmt.Errorf("hyprkeys: %w", err)
		}
		out = append(out, FlatBinding{Section: p, KeyBinding: toKeyBinding(kb), Programs: progs})
	}
	return out, nil
}

func toKeyBinding(kb *store.Keybind) parse.KeyBinding {
	mods := kb.Mods
	if mods == nil {
		mods = []string{}
	}
	return parse.KeyBinding{
		Mods:       mods,
		Key:        kb.Key,
		Dispatcher: kb.Dispatcher,
		Params:     kb.Params,
		Comment:    kb.Comment,
	}
}
