package fileutil

import (
	"os"
	"path/filepath"

	"github.com/nikmy/gameprefs/pkg/errors"
)

// EnsureParentDir creates parent directories for the given path if they do not exist.
func EnsureParentDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ReplaceFileAtomically renames tempPath over targetPath. On failure the
// target is left as it was.
func ReplaceFileAtomically(tempPath, targetPath string) error {
	return os.Rename(tempPath, targetPath)
}

// AtomicWriter writes whole files through a temp file in the destination
// directory. The hooks exist so tests can fail either side of the rename.
type AtomicWriter struct {
	Rename    func(tempPath, targetPath string) error
	AfterSwap func(targetPath string) error
}

// WriteFile replaces path with data. Readers observe either the old content
// or the new one, never a prefix.
func (w AtomicWriter) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := EnsureParentDir(path); err != nil {
		return errors.WrapFail(err, "create parent directory")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapFail(err, "create temp file")
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapFail(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.WrapFail(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapFail(err, "close temp file")
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return errors.WrapFail(err, "chmod temp file")
	}

	rename := w.Rename
	if rename == nil {
		rename = ReplaceFileAtomically
	}
	if err := rename(tmpPath, path); err != nil {
		return errors.WrapFail(err, "replace target file")
	}
	committed = true

	if w.AfterSwap != nil {
		return w.AfterSwap(path)
	}
	return nil
}

// WriteFileAtomically is AtomicWriter{}.WriteFile.
func WriteFileAtomically(path string, data []byte, perm os.FileMode) error {
	return AtomicWriter{}.WriteFile(path, data, perm)
}
