// Package store persists match snapshots in SQLite, keeping the latest blob
// per match for the undo/restore flow.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"tribelands/internal/ports"
)

// Store handles SQLite persistence of match snapshots.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS match_snapshots (
			match_id   TEXT PRIMARY KEY,
			era        INTEGER NOT NULL,
			blob       BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	return err
}

// SaveSnapshot upserts the match's latest snapshot blob.
func (s *Store) SaveSnapshot(ctx context.Context, matchID string, era int, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO match_snapshots (match_id, era, blob, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(match_id) DO UPDATE SET
			era = excluded.era,
			blob = excluded.blob,
			updated_at = CURRENT_TIMESTAMP
	`, matchID, era, blob)
	if err != nil {
		return fmt.Errorf("save snapshot for %s: %w", matchID, err)
	}
	return nil
}

// LoadSnapshot returns the match's latest snapshot blob.
func (s *Store) LoadSnapshot(ctx context.Context, matchID string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT blob FROM match_snapshots WHERE match_id = ?", matchID,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", matchID, err)
	}
	return blob, nil
}

// DeleteSnapshot removes a match's stored snapshot, e.g. when the match
// ends.
func (s *Store) DeleteSnapshot(ctx context.Context, matchID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM match_snapshots WHERE match_id = ?", matchID)
	if err != nil {
		return fmt.Errorf("delete snapshot for %s: %w", matchID, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ ports.SnapshotStore = (*Store)(nil)
