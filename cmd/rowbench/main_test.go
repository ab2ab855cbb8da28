package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rowbench/internal/rowstore"
	"rowbench/internal/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunScript_SpecExample(t *testing.T) {
	var out bytes.Buffer
	err := runScript(context.Background(), strings.NewReader("create 3\ndelete 2\nswap 0 1\n"),
		script.FormatAuto, true, 1, &out)
	require.NoError(t, err)

	snap, err := rowstore.DecodeSnapshot(&out)
	require.NoError(t, err)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, rowstore.ID(3), snap.Rows[0].ID)
	assert.Equal(t, rowstore.ID(1), snap.Rows[1].ID)
	assert.Nil(t, snap.Selected)
	assert.Equal(t, rowstore.ID(4), snap.NextID)
}

func TestRunScript_SeedIsReproducible(t *testing.T) {
	src := "steps:\n  - op: create\n    count: 20\n  - op: update\n  - op: select\n    id: 4\n"
	run := func() string {
		var out bytes.Buffer
		require.NoError(t, runScript(context.Background(), strings.NewReader(src), script.FormatYAML, true, 99, &out))
		return out.String()
	}
	assert.Equal(t, run(), run())
}

func TestRunScript_Errors(t *testing.T) {
	var out bytes.Buffer
	err := runScript(context.Background(), strings.NewReader("bogus"), script.FormatLines, false, 0, &out)
	assert.ErrorIs(t, err, script.ErrSyntax)

	err = runScript(context.Background(), strings.NewReader("delete-index 0"), script.FormatLines, false, 0, &out)
	assert.ErrorIs(t, err, rowstore.ErrIndexOutOfRange)
	assert.Empty(t, out.String(), "no snapshot after a failed step")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSnapshot(t *testing.T, dir, name string, s *rowstore.Store) string {
	t.Helper()
	b, err := s.Snapshot().MarshalCanonical()
	require.NoError(t, err)
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, b, 0o644))
	return p
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	a := rowstore.New(rowstore.WithSeed(2))
	a.Create(3)
	pa := writeSnapshot(t, dir, "a.json", a)
	pb := writeSnapshot(t, dir, "b.json", a)

	out, err := execute(t, "diff", pa, pb)
	require.NoError(t, err)
	assert.Contains(t, out, "identical")

	a.SwapRows(0, 2)
	pc := writeSnapshot(t, dir, "c.json", a)
	out, err = execute(t, "diff", pa, pc)
	var d *diffError
	require.ErrorAs(t, err, &d)
	assert.Positive(t, d.ops)
	assert.Contains(t, out, `"path": "/rows/0/id"`)
}

func TestRunCommand(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ops.txt")
	require.NoError(t, os.WriteFile(p, []byte("create 2\nselect 2\n"), 0o644))

	out, err := execute(t, "run", "--seed", "5", p)
	require.NoError(t, err)
	assert.Contains(t, out, `"selected": 2`)

	_, err = execute(t, "run", "--format", "toml", p)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rowbench version 0.1.0\n", out)
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "version")
	assert.ErrorContains(t, err, "invalid --log-level")
	_, err = execute(t, "--log-level", "info", "version")
	assert.NoError(t, err)
}
