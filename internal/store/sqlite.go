package store

import (
	"database/sql"
	"os"
	"path/filepath"

	"scenelist/internal/errors"
	"scenelist/pkg/types"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS scenes (
	position INTEGER PRIMARY KEY,
	path     TEXT NOT NULL UNIQUE
);
`

// SQLiteStore keeps the list in a sqlite table, one row per position.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.NewStoreError("failed to create store directory", "sqlite", errors.StoreOpenFailed, err).WithOperation("mkdir")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStoreError("failed to open database", "sqlite", errors.StoreOpenFailed, err).WithOperation("open")
	}
	// A single connection keeps ":memory:" databases alive between calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewStoreError("failed to create schema", "sqlite", errors.StoreOpenFailed, err).WithOperation("schema")
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Load returns the stored list ordered by position.
func (s *SQLiteStore) Load() ([]types.Item, error) {
	rows, err := s.db.Query(`SELECT path FROM scenes ORDER BY position`)
	if err != nil {
		return nil, errors.NewStoreError("failed to query scenes", "sqlite", errors.StoreLoadFailed, err).WithOperation("select")
	}
	defer rows.Close()

	items := []types.Item{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, errors.NewStoreError("failed to read scene row", "sqlite", errors.StoreLoadFailed, err).WithOperation("scan")
		}
		items = append(items, types.Item(p))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("failed to read scenes", "sqlite", errors.StoreLoadFailed, err).WithOperation("scan")
	}
	return items, nil
}

// Commit replaces every row in one transaction.
func (s *SQLiteStore) Commit(list []types.Item) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.NewStoreError("failed to begin transaction", "sqlite", errors.StoreCommitFailed, err).WithOperation("begin")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM scenes`); err != nil {
		return errors.NewStoreError("failed to clear scenes", "sqlite", errors.StoreCommitFailed, err).WithOperation("delete")
	}

	stmt, err := tx.Prepare(`INSERT INTO scenes (position, path) VALUES (?, ?)`)
	if err != nil {
		return errors.NewStoreError("failed to prepare insert", "sqlite", errors.StoreCommitFailed, err).WithOperation("insert")
	}
	defer stmt.Close()

	for i, it := range list {
		if _, err = stmt.Exec(i, it.Path()); err != nil {
			return errors.NewStoreError("failed to insert scene", "sqlite", errors.StoreCommitFailed, err).WithOperation("insert")
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.NewStoreError("failed to commit transaction", "sqlite", errors.StoreCommitFailed, err).WithOperation("commit")
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
