package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tribelands/internal/ports"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveSnapshot(ctx, "m1", 1, []byte("blob-one")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadSnapshot(ctx, "m1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "blob-one" {
		t.Errorf("loaded %q, want blob-one", got)
	}
}

func TestSaveSnapshotUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveSnapshot(ctx, "m1", 1, []byte("first")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveSnapshot(ctx, "m1", 2, []byte("second")); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := s.LoadSnapshot(ctx, "m1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("loaded %q, want the replacement blob", got)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadSnapshot(context.Background(), "nope")
	if !errors.Is(err, ports.ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestDeleteSnapshot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SaveSnapshot(ctx, "m1", 1, []byte("blob")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.DeleteSnapshot(ctx, "m1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.LoadSnapshot(ctx, "m1"); !errors.Is(err, ports.ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot after delete, got %v", err)
	}

	// Deleting an absent row is not an error.
	if err := s.DeleteSnapshot(ctx, "never-saved"); err != nil {
		t.Errorf("delete missing: %v", err)
	}
}
