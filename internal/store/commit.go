package store

import (
	"database/sql"
	"fmt"
)

// CommitBatch replaces any previous data for the batch's file path with the
// batch contents, in one transaction, and returns the new file ID. Fake
// (negative) IDs are remapped to real ones and every reference inside the
// batch is rewritten.
//
// Insert order follows FK dependencies:
//  1. File
//  2. Sections (file_id, parent_id; parents precede children)
//  3. Keybinds (section_id)
//  4. Programs (keybind_id)
func (s *Store) CommitBatch(batch *Batch) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("commit batch: begin: %w", err)
	}
	defer tx.Rollback()

	var oldID int64
	err = tx.QueryRow("SELECT id FROM files WHERE path = ?", batch.File.Path).Scan(&oldID)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return 0, fmt.Errorf("commit batch: lookup file: %w", err)
	default:
		if err := deleteFileData(tx, oldID); err != nil {
			return 0, fmt.Errorf("commit batch: %w", err)
		}
	}

	fileID, err := insertFile(tx, &batch.File)
	if err != nil {
		return 0, fmt.Errorf("commit batch: file %s: %w", batch.File.Path, err)
	}

	fakeToReal := make(map[int64]int64)

	for _, sec := range batch.Sections {
		fake := sec.ID
		sec.FileID = fileID
		if sec.ParentID != nil && *sec.ParentID < 0 {
			realID := fakeToReal[*sec.ParentID]
			sec.ParentID = &realID
		}
		realID, err := insertSection(tx, &sec)
		if err != nil {
			return 0, fmt.Errorf("commit batch: section %q: %w", sec.Name, err)
		}
		fakeToReal[fake] = realID
	}

	for _, kb := range batch.Keybinds {
		fake := kb.ID
		if kb.SectionID < 0 {
			kb.SectionID = fakeToReal[kb.SectionID]
		}
		realID, err := insertKeybind(tx, &kb)
		if err != nil {
			return 0, fmt.Errorf("commit batch: keybind %q: %w", kb.Key, err)
		}
		fakeToReal[fake] = realID
	}

	for _, p := range batch.Programs {
		if p.KeybindID < 0 {
			p.KeybindID = fakeToReal[p.KeybindID]
		}
		if _, err := insertProgram(tx, &p); err != nil {
			return 0, fmt.Errorf("commit batch: program %q: %w", p.Program, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}
	batch.File.ID = fileID
	return fileID, nil
}
