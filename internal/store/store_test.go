package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

// testBatch builds a batch for path holding:
//
//	Apps            (exec kitty, exec "grim | wl-copy")
//	  Browsers      (exec firefox)
//	Windows         (killactive)
func testBatch(path string) *Batch {
	b := NewBatch(File{Path: path, Hash: "h1", LineCount: 12, Snapshot: "snap-1", LastIndexed: time.Now().Truncate(time.Second)})

	apps, _ := b.InsertSection(&Section{Name: "Apps", Level: 0, Ordinal: 0})
	kitty, _ := b.InsertKeybind(&Keybind{SectionID: apps, Ordinal: 0, Mods: []string{}, Key: "Return", Dispatcher: "exec", Params: "kitty", Comment: "Run: kitty"})
	_, _ = b.InsertProgram(&BindProgram{KeybindID: kitty, Program: "kitty"})
	shot, _ := b.InsertKeybind(&Keybind{SectionID: apps, Ordinal: 1, Mods: []string{"SHIFT"}, Key: "S", Dispatcher: "exec", Params: "grim | wl-copy", Comment: "Screenshot"})
	_, _ = b.InsertProgram(&BindProgram{KeybindID: shot, Program: "grim"})
	_, _ = b.InsertProgram(&BindProgram{KeybindID: shot, Program: "wl-copy"})

	browsers, _ := b.InsertSection(&Section{ParentID: &apps, Name: "Browsers", Level: 1, Depth: 4, Ordinal: 0})
	ff, _ := b.InsertKeybind(&Keybind{SectionID: browsers, Ordinal: 0, Key: "W", Dispatcher: "exec", Params: "firefox", Comment: "Run: firefox"})
	_, _ = b.InsertProgram(&BindProgram{KeybindID: ff, Program: "firefox"})

	windows, _ := b.InsertSection(&Section{Name: "Windows", Level: 0, Ordinal: 1})
	_, _ = b.InsertKeybind(&Keybind{SectionID: windows, Ordinal: 0, Mods: []string{"SUPER"}, Key: "Q", Dispatcher: "killactive", Comment: "killactive"})
	return b
}

// =============================================================================
// Schema & Lifecycle
// =============================================================================

func TestMigrate_AllTablesExist(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	for _, table := range []string{"files", "sections", "keybinds", "bind_programs", "metadata"} {
		var name string
		err := s.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Migrate())
}

// =============================================================================
// Files, sections, keybinds
// =============================================================================

func TestInsertFile_FileByPath(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	f := &File{Path: "/cfg/binds.conf", Hash: "h", ScriptHash: "sh", LineCount: 3, Snapshot: "x", LastIndexed: time.Now().Truncate(time.Second)}
	id, err := s.InsertFile(f)
	require.NoError(t, err)
	require.Positive(t, id)
	assert.Equal(t, id, f.ID)

	got, err := s.FileByPath("/cfg/binds.conf")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "h", got.Hash)
	assert.Equal(t, "sh", got.ScriptHash)
	assert.Equal(t, 3, got.LineCount)
	assert.Equal(t, "x", got.Snapshot)

	missing, err := s.FileByPath("/nope.conf")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDirectInserts(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	fID, err := s.InsertFile(&File{Path: "/a.conf", Hash: "h", Snapshot: "s", LastIndexed: time.Now()})
	require.NoError(t, err)
	secID, err := s.InsertSection(&Section{FileID: fID, Name: "Top"})
	require.NoError(t, err)
	kbID, err := s.InsertKeybind(&Keybind{SectionID: secID, Mods: []string{"SUPER", "ALT"}, Key: "K", Dispatcher: "exec", Params: "foot"})
	require.NoError(t, err)
	_, err = s.InsertProgram(&BindProgram{KeybindID: kbID, Program: "foot"})
	require.NoError(t, err)

	kbs, err := s.KeybindsByFile(fID)
	require.NoError(t, err)
	require.Len(t, kbs, 1)
	assert.Equal(t, []string{"SUPER", "ALT"}, kbs[0].Mods)

	progs, err := s.ProgramsByKeybind(kbID)
	require.NoError(t, err)
	assert.Equal(t, []string{"foot"}, progs)
}

func TestInsertSection_UnknownFileFails(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.InsertSection(&Section{FileID: 999, Name: "Orphan"})
	assert.Error(t, err)
}

// =============================================================================
// Batches
// =============================================================================

func TestCommitBatch_RemapsIDs(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	fileID, err := s.CommitBatch(testBatch("/cfg/hyprland.conf"))
	require.NoError(t, err)
	require.Positive(t, fileID)

	secs, err := s.SectionsByFile(fileID)
	require.NoError(t, err)
	require.Len(t, secs, 3)
	assert.Equal(t, "Apps", secs[0].Name)
	assert.Nil(t, secs[0].ParentID)
	assert.Equal(t, "Windows", secs[1].Name)
	assert.Equal(t, "Browsers", secs[2].Name)
	require.NotNil(t, secs[2].ParentID)
	assert.Equal(t, secs[0].ID, *secs[2].ParentID)
	assert.Equal(t, 1, secs[2].Level)
	assert.Equal(t, 4, secs[2].Depth)

	kbs, err := s.KeybindsByFile(fileID)
	require.NoError(t, err)
	require.Len(t, kbs, 4)
	for _, kb := range kbs {
		assert.Positive(t, kb.ID)
		assert.Positive(t, kb.SectionID)
		assert.NotNil(t, kb.Mods)
	}
	assert.Equal(t, "Return", kbs[0].Key)
	assert.Equal(t, "S", kbs[1].Key)
	assert.Equal(t, []string{"SHIFT"}, kbs[1].Mods)

	progs, err := s.ProgramsByKeybind(kbs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"grim", "wl-copy"}, progs)
}

func TestCommitBatch_ReplacesPreviousData(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.CommitBatch(testBatch("/cfg/hyprland.conf"))
	require.NoError(t, err)

	b := NewBatch(File{Path: "/cfg/hyprland.conf", Hash: "h2", Snapshot: "snap-2", LastIndexed: time.Now()})
	only, _ := b.InsertSection(&Section{Name: "Only"})
	_, _ = b.InsertKeybind(&Keybind{SectionID: only, Key: "O", Dispatcher: "exec", Params: "only"})
	fileID, err := s.CommitBatch(b)
	require.NoError(t, err)

	files, err := s.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "h2", files[0].Hash)
	assert.Equal(t, "snap-2", files[0].Snapshot)

	secs, err := s.SectionsByFile(fileID)
	require.NoError(t, err)
	require.Len(t, secs, 1)
	assert.Equal(t, "Only", secs[0].Name)

	counts, err := s.ProgramCounts()
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestDeleteFileData(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	keep, err := s.CommitBatch(testBatch("/keep.conf"))
	require.NoError(t, err)
	drop, err := s.CommitBatch(testBatch("/drop.conf"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteFileData(drop))

	f, err := s.FileByPath("/drop.conf")
	require.NoError(t, err)
	assert.Nil(t, f)

	kbs, err := s.KeybindsByFile(keep)
	require.NoError(t, err)
	assert.Len(t, kbs, 4)

	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM sections").Scan(&n))
	assert.Equal(t, 3, n)
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM bind_programs").Scan(&n))
	assert.Equal(t, 4, n)
}

// =============================================================================
// Queries
// =============================================================================

func TestProgramCounts(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.CommitBatch(testBatch("/a.conf"))
	require.NoError(t, err)
	_, err = s.CommitBatch(testBatch("/b.conf"))
	require.NoError(t, err)

	counts, err := s.ProgramCounts()
	require.NoError(t, err)
	require.Len(t, counts, 4)
	for _, c := range counts {
		assert.Equal(t, 2, c.Count, c.Program)
	}
	assert.Equal(t, "firefox", counts[0].Program)
}

func TestKeybindsByProgram(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.CommitBatch(testBatch("/a.conf"))
	require.NoError(t, err)

	kbs, err := s.KeybindsByProgram("wl-copy")
	require.NoError(t, err)
	require.Len(t, kbs, 1)
	assert.Equal(t, "grim | wl-copy", kbs[0].Params)

	kbs, err = s.KeybindsByProgram("missing")
	require.NoError(t, err)
	assert.Empty(t, kbs)
}

func TestKeybindsByDispatcher_CaseInsensitive(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.CommitBatch(testBatch("/a.conf"))
	require.NoError(t, err)

	kbs, err := s.KeybindsByDispatcher("EXEC")
	require.NoError(t, err)
	assert.Len(t, kbs, 3)
}

func TestModifiersRoundTrip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[]", marshalModifiers(nil))
	assert.Equal(t, `["SUPER","SHIFT"]`, marshalModifiers([]string{"SUPER", "SHIFT"}))
	assert.Equal(t, []string{}, unmarshalModifiers(""))
	assert.Equal(t, []string{}, unmarshalModifiers("null"))
	assert.Equal(t, []string{"CTRL"}, unmarshalModifiers(`["CTRL"]`))
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ContentHash([]byte("a")), ContentHash([]byte("a")))
	assert.NotEqual(t, ContentHash([]byte("a")), ContentHash([]byte("b")))
	assert.Empty(t, ScriptHash(""))
	assert.Len(t, ScriptHash("x"), 64)
}

func TestSectionPath(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	fileID, err := s.CommitBatch(testBatch("/cfg/hyprland.conf"))
	require.NoError(t, err)
	secs, err := s.SectionsByFile(fileID)
	require.NoError(t, err)
	require.Len(t, secs, 3)

	path, err := s.SectionPath(secs[2].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apps", "Browsers"}, path)

	path, err = s.SectionPath(secs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Windows"}, path)

	path, err = s.SectionPath(9999)
	require.NoError(t, err)
	assert.Empty(t, path)
}
