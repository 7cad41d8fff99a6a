package hyprkeys

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jward/hyprkeys/internal/parse"
	"github.com/jward/hyprkeys/internal/runtime"
	"github.com/jward/hyprkeys/internal/shell"
	"github.com/jward/hyprkeys/internal/store"
)

// Engine reads, parses, and optionally indexes Hyprland config files.
type Engine struct {
	store  *store.Store // nil for a parse-only Engine
	logger *zap.Logger

	commentScript string
	scriptsFS     fs.FS
	commenter     *runtime.Commenter

	// useParallel enables the parallel indexing pipeline.
	useParallel bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for indexing progress and script failures.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithCommentScript loads a Risor script that generates comments for binds
// that have none. An empty path keeps the built-in comments.
func WithCommentScript(path string) Option {
	return func(e *Engine) {
		e.commentScript = path
	}
}

// WithScriptsFS loads the comment script from fsys instead of from disk.
func WithScriptsFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.scriptsFS = fsys
	}
}

// WithParallel controls parallel indexing. When true (default), IndexFiles
// parses on a worker pool with a single goroutine committing batches to
// SQLite. Set to false for serial mode.
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.useParallel = parallel
	}
}

// NewParser creates an Engine without a database. Only the parse methods
// may be used.
func NewParser(opts ...Option) (*Engine, error) {
	e := &Engine{
		logger:      zap.NewNop(),
		useParallel: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.loadCommenter(); err != nil {
		return nil, err
	}
	return e, nil
}

// New creates an Engine backed by a SQLite database at dbPath.
func New(dbPath string, opts ...Option) (*Engine, error) {
	e, err := NewParser(opts...)
	if err != nil {
		return nil, err
	}

	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("hyprkeys: create store: %w", err)
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, fmt.Errorf("hyprkeys: migrate: %w", err)
	}
	e.store = s
	return e, nil
}

func (e *Engine) loadCommenter() error {
	if e.commentScript == "" {
		return nil
	}
	var rt *runtime.Runtime
	name := e.commentScript
	if e.scriptsFS != nil {
		rt = runtime.NewRuntime("", runtime.WithRuntimeFS(e.scriptsFS), runtime.WithLogger(e.logger))
	} else {
		rt = runtime.NewRuntime(filepath.Dir(name), runtime.WithLogger(e.logger))
	}
	c, err := rt.NewCommenter(name)
	if err != nil {
		return fmt.Errorf("hyprkeys: comment script: %w", err)
	}
	e.commenter = c
	return nil
}

// Close releases the Engine's database resources.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Store returns the underlying Store, or nil for a parse-only Engine.
func (e *Engine) Store() *Store {
	return e.store
}

// Query returns a new QueryBuilder wrapping the Store.
func (e *Engine) Query() *QueryBuilder {
	return &QueryBuilder{store: e.store}
}

// ReadFile reads a config file in full. Missing files wrap ErrNotFound and
// content that is not UTF-8 wraps ErrInvalidUTF8.
func ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("hyprkeys: read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUTF8, path)
	}
	return content, nil
}

func (e *Engine) parser(ctx context.Context) *parse.Parser {
	var opts []parse.Option
	if e.commenter != nil {
		opts = append(opts, parse.WithCommenter(e.commenter.Func(ctx)))
	}
	return parse.New(opts...)
}

// Parse parses config text into its top-level sections.
func (e *Engine) Parse(ctx context.Context, text string) []Section {
	return e.parser(ctx).ParseString(text)
}

// ParseFile reads and parses the config file at path. Read failures are
// returned before any parsing happens.
func (e *Engine) ParseFile(ctx context.Context, path string) ([]Section, error) {
	content, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	secs := e.Parse(ctx, string(content))
	e.logger.Debug("parsed config",
		zap.String("path", path),
		zap.Int("sections", len(secs)),
	)
	return secs, nil
}

// scriptHash identifies the active comment script; "" when none is set.
func (e *Engine) scriptHash() string {
	if e.commenter == nil {
		return ""
	}
	return store.ScriptHash(e.commenter.Source())
}

// IndexFiles indexes the given config files and returns how many were
// written. A file is skipped when both its content and the comment script
// match what it was last indexed with. When WithParallel is enabled, parsing
// runs on a worker pool; otherwise files are handled one at a time.
//
// Errors on individual files are collected; processing continues.
func (e *Engine) IndexFiles(ctx context.Context, paths []string) (int, error) {
	if e.store == nil {
		return 0, fmt.Errorf("%w: index", ErrNoDatabase)
	}
	if e.useParallel {
		return e.indexFilesParallel(ctx, paths)
	}
	return e.indexFilesSerial(ctx, paths)
}

func (e *Engine) indexFilesSerial(ctx context.Context, paths []string) (int, error) {
	var (
		errs []error
		n    int
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		item, skip, err := e.prepareFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("index %s: %w", path, err))
			continue
		}
		if skip {
			continue
		}
		if err := e.extractFile(ctx, item); err != nil {
			errs = append(errs, fmt.Errorf("index %s: %w", path, err))
			continue
		}
		if _, err := e.store.CommitBatch(item.batch); err != nil {
			errs = append(errs, fmt.Errorf("index %s: %w", path, err))
			continue
		}
		n++
	}
	if len(errs) > 0 {
		return n, fmt.Errorf("hyprkeys: indexing had %d error(s): %w", len(errs), errors.Join(errs...))
	}
	return n, nil
}

// workItem holds everything a worker needs to turn one file into a batch.
type workItem struct {
	path  string
	text  string
	batch *store.Batch
}

// prepareFile reads path and decides whether it needs indexing. Returns
// skip=true when the stored content and script hashes both match.
func (e *Engine) prepareFile(path string) (workItem, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return workItem{}, false, err
	}
	content, err := ReadFile(abs)
	if err != nil {
		return workItem{}, false, err
	}
	hash := store.ContentHash(content)
	scriptHash := e.scriptHash()

	existing, err := e.store.FileByPath(abs)
	if err != nil {
		return workItem{}, false, fmt.Errorf("lookup file: %w", err)
	}
	if existing != nil && existing.Hash == hash && existing.ScriptHash == scriptHash {
		e.logger.Debug("unchanged", zap.String("path", abs))
		return workItem{}, true, nil
	}

	batch := store.NewBatch(store.File{
		Path:        abs,
		Hash:        hash,
		ScriptHash:  scriptHash,
		LineCount:   bytes.Count(content, []byte{'\n'}) + 1,
		Snapshot:    uuid.NewString(),
		LastIndexed: time.Now(),
	})
	return workItem{path: abs, text: string(content), batch: batch}, false, nil
}

// extractFile parses one file into its batch. Safe to call from several
// goroutines on distinct items.
func (e *Engine) extractFile(ctx context.Context, item workItem) error {
	secs := e.parser(ctx).ParseString(item.text)
	return e.writeTree(ctx, item.batch, secs)
}

// writeTree records secs and their descendants in w.
func (e *Engine) writeTree(ctx context.Context, w store.TreeWriter, secs []Section) error {
	var walk func(parent *int64, level int, secs []Section) error
	walk = func(parent *int64, level int, secs []Section) error {
		for i, sec := range secs {
			secID, err := w.InsertSection(&store.Section{
				ParentID: parent,
				Name:     sec.Name,
				Level:    level,
				Depth:    sec.Depth,
				Ordinal:  i,
			})
			if err != nil {
				return fmt.Errorf("section %q: %w", sec.Name, err)
			}
			for j, kb := range sec.Keybinds {
				if err := e.writeKeybind(ctx, w, secID, j, kb); err != nil {
					return err
				}
			}
			if err := walk(&secID, level+1, sec.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(nil, 0, secs)
}

func (e *Engine) writeKeybind(ctx context.Context, w store.TreeWriter, secID int64, ordinal int, kb KeyBinding) error {
	kbID, err := w.InsertKeybind(&store.Keybind{
		SectionID:  secID,
		Ordinal:    ordinal,
		Mods:       kb.Mods,
		Key:        kb.Key,
		Dispatcher: kb.Dispatcher,
		Params:     kb.Params,
		Comment:    kb.Comment,
	})
	if err != nil {
		return fmt.Errorf("keybind %q: %w", kb.Key, err)
	}
	if !shell.IsExec(kb.Dispatcher) {
		return nil
	}

	progs, err := shell.Programs(ctx, kb.Params)
	if err != nil {
		// A command line tree-sitter cannot read only loses its programs.
		e.logger.Debug("exec parse failed", zap.String("params", kb.Params), zap.Error(err))
		return nil
	}
	for _, p := range progs {
		if _, err := w.InsertProgram(&store.BindProgram{KeybindID: kbID, Program: p}); err != nil {
			return fmt.Errorf("program %q: %w", p, err)
		}
	}
	return nil
}

// skipDirs are excluded from directory walks in addition to hidden dirs.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// IndexDirectory walks root and indexes every *.conf file under it,
// skipping hidden directories. Indexed files under root that the walk no
// longer finds are removed from the database.
func (e *Engine) IndexDirectory(ctx context.Context, root string) (int, error) {
	if e.store == nil {
		return 0, fmt.Errorf("%w: index", ErrNoDatabase)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return 0, fmt.Errorf("hyprkeys: %w", err)
	}
	paths, err := ListConfigFiles(abs)
	if err != nil {
		return 0, err
	}
	if err := e.pruneMissing(abs, paths); err != nil {
		return 0, err
	}
	return e.IndexFiles(ctx, paths)
}

// pruneMissing deletes indexed files under root that are not in found.
func (e *Engine) pruneMissing(root string, found []string) error {
	keep := make(map[string]bool, len(found))
	for _, p := range found {
		keep[p] = true
	}
	files, err := e.store.Files()
	if err != nil {
		return fmt.Errorf("hyprkeys: prune: %w", err)
	}
	prefix := root + string(filepath.Separator)
	for _, f := range files {
		if keep[f.Path] || !strings.HasPrefix(f.Path, prefix) {
			continue
		}
		if err := e.store.DeleteFileData(f.ID); err != nil {
			return fmt.Errorf("hyprkeys: prune %s: %w", f.Path, err)
		}
		e.logger.Debug("removed from index", zap.String("path", f.Path))
	}
	return nil
}

// ListConfigFiles returns the *.conf files under root in lexical order.
func ListConfigFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".conf" {
			paths = append(paths, path)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, root)
	}
	if err != nil {
		return nil, fmt.Errorf("hyprkeys: walk directory: %w", err)
	}
	return paths, nil
}
