package store

import (
	"database/sql"
	"fmt"
)

// --- Inserts ---

func insertFile(ex execer, f *File) (int64, error) {
	id, err := insertID(ex.Exec(
		"INSERT INTO files (path, hash, script_hash, line_count, snapshot, last_indexed) VALUES (?, ?, ?, ?, ?, ?)",
		f.Path, f.Hash, f.ScriptHash, f.LineCount, f.Snapshot, f.LastIndexed,
	))
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	f.ID = id
	return id, nil
}

func insertSection(ex execer, sec *Section) (int64, error) {
	id, err := insertID(ex.Exec(
		"INSERT INTO sections (file_id, parent_id, name, level, depth, ordinal) VALUES (?, ?, ?, ?, ?, ?)",
		sec.FileID, sec.ParentID, sec.Name, sec.Level, sec.Depth, sec.Ordinal,
	))
	if err != nil {
		return 0, fmt.Errorf("insert section: %w", err)
	}
	sec.ID = id
	return id, nil
}

func insertKeybind(ex execer, kb *Keybind) (int64, error) {
	id, err := insertID(ex.Exec(
		`INSERT INTO keybinds (section_id, ordinal, mods, key, dispatcher, params, comment)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		kb.SectionID, kb.Ordinal, marshalModifiers(kb.Mods), kb.Key, kb.Dispatcher, kb.Params, kb.Comment,
	))
	if err != nil {
		return 0, fmt.Errorf("insert keybind: %w", err)
	}
	kb.ID = id
	return id, nil
}

func insertProgram(ex execer, p *BindProgram) (int64, error) {
	id, err := insertID(ex.Exec(
		"INSERT INTO bind_programs (keybind_id, program) VALUES (?, ?)",
		p.KeybindID, p.Program,
	))
	if err != nil {
		return 0, fmt.Errorf("insert program: %w", err)
	}
	p.ID = id
	return id, nil
}

func (s *Store) InsertFile(f *File) (int64, error) { return insertFile(s.db, f) }
func (s *Store) InsertSection(sec *Section) (int64, error) { return insertSection(s.db, sec) }
func (s *Store) InsertKeybind(kb *Keybind) (int64, error) { return insertKeybind(s.db, kb) }
func (s *Store) InsertProgram(p *BindProgram) (int64, error) { return insertProgram(s.db, p) }

// --- Files ---

const fileColumns = "id, path, hash, script_hash, line_count, snapshot, last_indexed"

func scanFile(scanner interface{ Scan(...any) error }) (*File, error) {
	f := &File{}
	if err := scanner.Scan(&f.ID, &f.Path, &f.Hash, &f.ScriptHash, &f.LineCount, &f.Snapshot, &f.LastIndexed); err != nil {
		return nil, err
	}
	return f, nil
}

// FileByPath returns the file indexed at path, or nil if there is none.
func (s *Store) FileByPath(path string) (*File, error) {
	f, err := scanFile(s.db.QueryRow("SELECT "+fileColumns+" FROM files WHERE path = ?", path))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by path: %w", err)
	}
	return f, nil
}

// Files returns every indexed file ordered by path.
func (s *Store) Files() ([]*File, error) {
	rows, err := s.db.Query("SELECT " + fileColumns + " FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("files: %w", err)
	}
	defer rows.Close()

	var files []*File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("files: scan: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// --- Sections ---

// SectionsByFile returns a file's sections ordered so every parent comes
// before its children and siblings keep file order.
func (s *Store) SectionsByFile(fileID int64) ([]*Section, error) {
	rows, err := s.db.Query(
		`SELECT id, file_id, parent_id, name, level, depth, ordinal FROM sections
		 WHERE file_id = ? ORDER BY level, ordinal`, fileID,
	)
	if err != nil {
		return nil, fmt.Errorf("sections by file: %w", err)
	}
	defer rows.Close()

	var secs []*Section
	for rows.Next() {
		sec := &Section{}
		if err := rows.Scan(&sec.ID, &sec.FileID, &sec.ParentID, &sec.Name, &sec.Level, &sec.Depth, &sec.Ordinal); err != nil {
			return nil, fmt.Errorf("sections by file: scan: %w", err)
		}
		secs = append(secs, sec)
	}
	return secs, rows.Err()
}

// SectionPath returns the section names from the top-level ancestor down
// to sectionID.
func (s *Store) SectionPath(sectionID int64) ([]string, error) {
	rows, err := s.db.Query(
		`WITH RECURSIVE chain(id, parent_id, name, level) AS (
			SELECT id, parent_id, name, level FROM sections WHERE id = ?
			UNION ALL
			SELECT p.id, p.parent_id, p.name, p.level
			FROM sections p JOIN chain c ON p.id = c.parent_id
		)
		SELECT name FROM chain ORDER BY level`, sectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("section path: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("section path: scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// --- Keybinds ---

func (s *Store) queryKeybinds(query string, args ...any) ([]*Keybind, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Keybind
	for rows.Next() {
		kb := &Keybind{}
		var mods string
		if err := rows.Scan(&kb.ID, &kb.SectionID, &kb.Ordinal, &mods, &kb.Key, &kb.Dispatcher, &kb.Params, &kb.Comment); err != nil {
			return nil, err
		}
		kb.Mods = unmarshalModifiers(mods)
		out = append(out, kb)
	}
	return out, rows.Err()
}

// KeybindsByFile returns every keybind of a file ordered by section ID and
// then by position in the section.
func (s *Store) KeybindsByFile(fileID int64) ([]*Keybind, error) {
	kbs, err := s.queryKeybinds(
		`SELECT k.id, k.section_id, k.ordinal, k.mods, k.key, k.dispatcher, k.params, k.comment
		 FROM keybinds k JOIN sections s ON s.id = k.section_id
		 WHERE s.file_id = ? ORDER BY k.section_id, k.ordinal`, fileID,
	)
	if err != nil {
		return nil, fmt.Errorf("keybinds by file: %w", err)
	}
	return kbs, nil
}

// KeybindsByDispatcher returns keybinds using a dispatcher, compared
// case-insensitively.
func (s *Store) KeybindsByDispatcher(dispatcher string) ([]*Keybind, error) {
	kbs, err := s.queryKeybinds(
		`SELECT id, section_id, ordinal, mods, key, dispatcher, params, comment
		 FROM keybinds WHERE lower(dispatcher) = lower(?) ORDER BY section_id, ordinal`, dispatcher,
	)
	if err != nil {
		return nil, fmt.Errorf("keybinds by dispatcher: %w", err)
	}
	return kbs, nil
}

// KeybindsByProgram returns keybinds that launch program.
func (s *Store) KeybindsByProgram(program string) ([]*Keybind, error) {
	kbs, err := s.queryKeybinds(
		`SELECT DISTINCT k.id, k.section_id, k.ordinal, k.mods, k.key, k.dispatcher, k.params, k.comment
		 FROM keybinds k JOIN bind_programs p ON p.keybind_id = k.id
		 WHERE p.program = ? ORDER BY k.section_id, k.ordinal`, program,
	)
	if err != nil {
		return nil, fmt.Errorf("keybinds by program: %w", err)
	}
	return kbs, nil
}

// --- Programs ---

// ProgramsByKeybind returns the programs a keybind launches in command order.
func (s *Store) ProgramsByKeybind(keybindID int64) ([]string, error) {
	rows, err := s.db.Query("SELECT program FROM bind_programs WHERE keybind_id = ? ORDER BY id", keybindID)
	if err != nil {
		return nil, fmt.Errorf("programs by keybind: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("programs by keybind: scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ProgramCounts returns every launched program with the number of keybinds
// that start it, most used first.
func (s *Store) ProgramCounts() ([]ProgramCount, error) {
	rows, err := s.db.Query(
		`SELECT program, COUNT(DISTINCT keybind_id) AS n FROM bind_programs
		 GROUP BY program ORDER BY n DESC, program`,
	)
	if err != nil {
		return nil, fmt.Errorf("program counts: %w", err)
	}
	defer rows.Close()

	var out []ProgramCount
	for rows.Next() {
		var pc ProgramCount
		if err := rows.Scan(&pc.Program, &pc.Count); err != nil {
			return nil, fmt.Errorf("program counts: scan: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}
