// Package snapshot encodes a match aggregate into a compact blob and back.
// Decoding an encoded aggregate reproduces identical card states, leader
// assignments and participant counters, which is what the undo collaborator
// relies on when it overwrites a live match between actions.
package snapshot

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"tribelands/internal/domain"
)

// Encode serializes the aggregate as gzip-compressed JSON.
func Encode(m *domain.Match) ([]byte, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal match %s: %w", m.ID, err)
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("compress match %s: %w", m.ID, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress match %s: %w", m.ID, err)
	}
	return buf.Bytes(), nil
}

// Decode restores an aggregate from an Encode blob.
func Decode(blob []byte) (*domain.Match, error) {
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	var m domain.Match
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &m, nil
}
