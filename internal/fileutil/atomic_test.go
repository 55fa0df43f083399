package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nikmy/gameprefs/pkg/errors"
)

func TestWriteFileAtomicallyCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "preferences.toml")

	require.NoError(t, WriteFileAtomically(path, []byte("x = 1\n"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "x = 1\n", string(got))
	requireNoTempFiles(t, filepath.Dir(path))
}

func TestAtomicWriterFailureBeforeRename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.toml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	w := AtomicWriter{
		Rename: func(string, string) error { return errors.Error("crash before rename") },
	}
	require.Error(t, w.WriteFile(path, []byte("new"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "old", string(got))
	requireNoTempFiles(t, filepath.Dir(path))
}

func TestAtomicWriterFailureAfterRename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.toml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	w := AtomicWriter{
		AfterSwap: func(string) error { return errors.Error("crash after rename") },
	}
	require.Error(t, w.WriteFile(path, []byte("new"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(got))
	requireNoTempFiles(t, filepath.Dir(path))
}

func TestReplaceFileAtomicallyOverwrites(t *testing.T) {
	dir := t.TempDir()
	src, dst := filepath.Join(dir, "src"), filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o644))

	require.NoError(t, ReplaceFileAtomically(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "new", string(got))
	require.NoFileExists(t, src)
}

func TestReplaceFileAtomicallyFailureKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o644))

	require.Error(t, ReplaceFileAtomically(filepath.Join(dir, "missing"), dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "old", string(got))
}

func TestAtomicWriterRenameOntoDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.toml")
	require.NoError(t, os.MkdirAll(path, 0o755))
	kept := filepath.Join(path, "kept")
	require.NoError(t, os.WriteFile(kept, []byte("old"), 0o644))

	require.Error(t, WriteFileAtomically(path, []byte("new"), 0o644))

	got, err := os.ReadFile(kept)
	require.NoError(t, err)
	require.Equal(t, "old", string(got))
	requireNoTempFiles(t, filepath.Dir(path))
}

func requireNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".*.tmp"))
	require.NoError(t, err)
	require.Empty(t, matches)
}
