// Package snapshot compares canonical row store snapshots produced by
// different runs or implementations.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"rowbench/internal/rowstore"

	"github.com/wI2L/jsondiff"
)

// ErrNoChanges is returned by Compare when both snapshots hold the same state.
var ErrNoChanges = errors.New("snapshots are identical")

// Compare returns the RFC 6902 patch that turns a into b.
func Compare(a, b rowstore.Snapshot) (jsondiff.Patch, error) {
	patch, err := jsondiff.Compare(a, b)
	if err != nil {
		return nil, fmt.Errorf("compare snapshots: %w", err)
	}
	if len(patch) == 0 {
		return nil, ErrNoChanges
	}
	return patch, nil
}

// CompareFiles decodes two snapshot files and compares them.
func CompareFiles(pathA, pathB string) (jsondiff.Patch, error) {
	a, err := Load(pathA)
	if err != nil {
		return nil, err
	}
	b, err := Load(pathB)
	if err != nil {
		return nil, err
	}
	return Compare(a, b)
}

// Load reads a snapshot from path; "-" reads stdin.
func Load(path string) (rowstore.Snapshot, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return rowstore.Snapshot{}, err
		}
		defer f.Close()
		r = f
	}
	snap, err := rowstore.DecodeSnapshot(r)
	if err != nil {
		return rowstore.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// WritePatch writes patch as indented JSON followed by a newline.
func WritePatch(w io.Writer, patch jsondiff.Patch) error {
	b, err := json.MarshalIndent(patch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal patch: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
