package rowstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// SnapshotRow is the serialized form of a Row.
type SnapshotRow struct {
	ID       ID     `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Snapshot is the canonical serialized state of a Store. Two stores with
// equal state encode to identical bytes.
type Snapshot struct {
	Rows     []SnapshotRow `json:"rows"`
	Selected *ID           `json:"selected"`
	NextID   ID            `json:"nextId"`
}

// Snapshot captures the current state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Rows:   make([]SnapshotRow, len(s.rows)),
		NextID: s.nextID,
	}
	for i, r := range s.rows {
		snap.Rows[i] = SnapshotRow{ID: r.ID, Label: r.Label, Selected: r.Selected}
	}
	if id, ok := s.Selected(); ok {
		snap.Selected = &id
	}
	return snap
}

// Encode writes the canonical JSON form: two-space indent, trailing newline.
func (snap Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// MarshalCanonical returns the canonical JSON bytes of snap.
func (snap Snapshot) MarshalCanonical() ([]byte, error) {
	var buf bytes.Buffer
	if err := snap.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot reads a snapshot written by Encode.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Rows == nil {
		snap.Rows = []SnapshotRow{}
	}
	return snap, nil
}
