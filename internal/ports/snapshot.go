package ports

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned when a match has no stored snapshot.
var ErrNoSnapshot = errors.New("no snapshot stored for match")

// SnapshotStore persists the latest encoded match aggregate so the undo
// collaborator can restore a match to its state before an action.
type SnapshotStore interface {
	// SaveSnapshot stores the blob as the match's latest snapshot,
	// replacing any previous one.
	SaveSnapshot(ctx context.Context, matchID string, era int, blob []byte) error

	// LoadSnapshot returns the match's latest snapshot blob.
	// Returns ErrNoSnapshot when none has been saved.
	LoadSnapshot(ctx context.Context, matchID string) ([]byte, error)

	// DeleteSnapshot discards the match's stored snapshot.
	DeleteSnapshot(ctx context.Context, matchID string) error
}
