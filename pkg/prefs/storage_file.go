package prefs

import (
	"io/fs"
	"os"

	"github.com/nikmy/gameprefs/internal/fileutil"
	"github.com/nikmy/gameprefs/pkg/errors"
)

// FileStorage keeps the document in one file, encoded with a Format.
// Writes replace the file atomically.
type FileStorage struct {
	path   string
	format Format
	writer fileutil.AtomicWriter
}

func NewFileStorage(path string, format Format) *FileStorage {
	if format == nil {
		format = TOML
	}
	return &FileStorage{path: path, format: format}
}

func (s *FileStorage) Path() string     { return s.path }
func (s *FileStorage) Format() Format   { return s.format }
func (s *FileStorage) Location() string { return s.path }

func (s *FileStorage) Read() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewDocument(), nil
	}
	if err != nil {
		return nil, &StorageReadError{Location: s.path, Err: err}
	}

	doc, err := DecodeDocument(s.format, data)
	if err != nil {
		return nil, &StorageReadError{Location: s.path, Err: err}
	}
	return doc, nil
}

func (s *FileStorage) Write(doc *Document) error {
	data, err := EncodeDocument(s.format, doc)
	if err != nil {
		return &StorageWriteError{Location: s.path, Err: err}
	}

	if err := s.writer.WriteFile(s.path, data, 0o644); err != nil {
		return &StorageWriteError{Location: s.path, Err: err}
	}
	return nil
}

// Remove deletes the file. A missing file is not an error.
func (s *FileStorage) Remove() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.WrapFailf(err, "remove %s", s.path)
	}
	return nil
}
