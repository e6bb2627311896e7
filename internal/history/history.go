// Package history keeps a local journal of completed backups in a SQLite
// database under the per-user storage directory. The journal never lives in
// the backup destination, which stays a flat directory of backup files only.
package history

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ondrovic/bookmark-backup/internal/types"
	"github.com/ondrovic/bookmark-backup/internal/utils"
	"github.com/ondrovic/bookmark-backup/internal/utils/storage"
)

const journalFileName = "history.db"

const createTableStmt = `
CREATE TABLE IF NOT EXISTS backups (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	browser     TEXT NOT NULL,
	profile     TEXT NOT NULL,
	source      TEXT NOT NULL,
	destination TEXT NOT NULL,
	bookmarks   INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
)`

// DefaultPath returns the journal location under the per-user storage dir.
func DefaultPath() string {
	return filepath.Join(storage.GetDataStoragePath(), journalFileName)
}

// Store records completed backups.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the journal at path.
func Open(path string) (*Store, error) {
	if err := utils.EnsureDirExists(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	if _, err := db.Exec(createTableStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing journal schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordAll appends one row per backup record inside a single transaction.
func (s *Store) RecordAll(records []types.BackupRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO backups
		(run_id, browser, profile, source, destination, bookmarks, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(
			rec.RunID, rec.Browser, rec.Profile,
			rec.Source, rec.Destination, rec.Bookmarks,
			rec.CreatedAt.UTC().Format(time.RFC3339),
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Recent returns up to limit records, most recent first.
func (s *Store) Recent(limit int) ([]types.BackupRecord, error) {
	if limit < 1 {
		limit = 1
	}

	rows, err := s.db.Query(`SELECT run_id, browser, profile, source, destination, bookmarks, created_at
		FROM backups ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []types.BackupRecord
	for rows.Next() {
		var rec types.BackupRecord
		var createdAt string
		if err := rows.Scan(&rec.RunID, &rec.Browser, &rec.Profile,
			&rec.Source, &rec.Destination, &rec.Bookmarks, &createdAt); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("corrupt journal timestamp %q: %w", createdAt, err)
		}
		rec.CreatedAt = ts
		records = append(records, rec)
	}
	return records, rows.Err()
}
