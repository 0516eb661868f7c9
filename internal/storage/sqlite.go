package storage

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hpungsan/flashdeck/internal/card"
	"github.com/hpungsan/flashdeck/internal/errors"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// SQLiteFile is the database file name inside the base directory.
const SQLiteFile = "flashdeck.db"

// SQLite stores the collection in a SQLite database, one row per flashcard.
// Save replaces every row in one transaction, so the database holds whole
// collections only, never a partial write.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite initializes the SQLite database at baseDir/flashdeck.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.flashdeck.
func OpenSQLite(baseDir string) (*SQLite, error) {
	// Create base directory with restricted permissions
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	// Pragmas in the connection string apply to all connections
	dbPath := filepath.Join(baseDir, SQLiteFile)
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	// Set file permissions after file exists (best-effort)
	_ = os.Chmod(dbPath, 0600)

	return &SQLite{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// DB exposes the underlying handle for tests and diagnostics.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load implements Adapter. A database that has never been saved to yields
// the seed collection; query failures on an opened database count as corrupt.
func (s *SQLite) Load() (*LoadResult, error) {
	var count int
	err := s.db.QueryRow(`SELECT card_count FROM collection_state WHERE id = 1`).Scan(&count)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return seedResult(SourceSeedMissing, nil), nil
		}
		return seedResult(SourceSeedCorrupt, errors.NewStorageCorrupt(s.path, err)), nil
	}

	cards, err := s.readCards()
	if err != nil {
		return seedResult(SourceSeedCorrupt, errors.NewStorageCorrupt(s.path, err)), nil
	}
	if len(cards) != count {
		err := fmt.Errorf("expected %d flashcards, found %d", count, len(cards))
		return seedResult(SourceSeedCorrupt, errors.NewStorageCorrupt(s.path, err)), nil
	}

	return &LoadResult{Cards: cards, Source: SourceStored}, nil
}

func (s *SQLite) readCards() (card.Collection, error) {
	rows, err := s.db.Query(`SELECT subject, front, back FROM flashcards ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := card.Collection{}
	for rows.Next() {
		var fc card.Flashcard
		if err := rows.Scan(&fc.Subject, &fc.Front, &fc.Back); err != nil {
			return nil, err
		}
		cards = append(cards, fc)
	}
	return cards, rows.Err()
}

// Save implements Adapter.
func (s *SQLite) Save(c card.Collection) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.NewStorageWrite(s.path, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(`DELETE FROM flashcards`); err != nil {
		return errors.NewStorageWrite(s.path, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO flashcards (position, subject, front, back) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.NewStorageWrite(s.path, err)
	}
	defer stmt.Close()

	for i, fc := range c {
		if _, err := stmt.Exec(i, fc.Subject, fc.Front, fc.Back); err != nil {
			return errors.NewStorageWrite(s.path, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO collection_state (id, saved_at, card_count) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at, card_count = excluded.card_count
	`, time.Now().Unix(), len(c))
	if err != nil {
		return errors.NewStorageWrite(s.path, err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageWrite(s.path, err)
	}
	return nil
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS flashcards (
		  position INTEGER PRIMARY KEY,
		  subject  TEXT NOT NULL,
		  front    TEXT NOT NULL,
		  back     TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS collection_state (
		  id         INTEGER PRIMARY KEY CHECK (id = 1),
		  saved_at   INTEGER NOT NULL,
		  card_count INTEGER NOT NULL
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
