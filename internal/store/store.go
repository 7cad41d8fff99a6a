package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jward/hyprkeys/internal/store/migrations"
)

// Store is the SQLite data access layer for indexed keybind files.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate applies all pending schema migrations. Idempotent.
func (s *Store) Migrate() error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migrate: source: %w", err)
	}
	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("migrate: driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("migrate: instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: up: %w", err)
	}
	return nil
}

// DeleteFileData transactionally removes a file and everything indexed
// from it.
func (s *Store) DeleteFileData(fileID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteFileData(tx, fileID); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteFileData deletes in reverse-dependency order to respect FK
// constraints. Sections go in one statement so their parent_id
// self-reference is checked only after all of them are gone.
func deleteFileData(ex execer, fileID int64) error {
	for _, q := range []string{
		`DELETE FROM bind_programs WHERE keybind_id IN (
		   SELECT k.id FROM keybinds k JOIN sections s ON s.id = k.section_id WHERE s.file_id = ?)`,
		"DELETE FROM keybinds WHERE section_id IN (SELECT id FROM sections WHERE file_id = ?)",
		"DELETE FROM sections WHERE file_id = ?",
		"DELETE FROM files WHERE id = ?",
	} {
		if _, err := ex.Exec(q, fileID); err != nil {
			return fmt.Errorf("delete file data: %w", err)
		}
	}
	return nil
}
