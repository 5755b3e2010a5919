package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores the document as one indented JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend for the file at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the file location.
func (b *FileBackend) Path() string {
	return b.path
}

// Load reads the whole file. A file that does not exist yet is an empty
// document, not an error.
func (b *FileBackend) Load(ctx context.Context) (State, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Empty(), nil
	}
	if err != nil {
		return Empty(), fmt.Errorf("%w: read %s: %v", ErrLoad, b.path, err)
	}
	return decodeState(data)
}

// Save replaces the file. The document is written to a sibling temp file
// first and renamed over the target, so readers never see a torn file.
func (b *FileBackend) Save(ctx context.Context, s State) error {
	data, err := encodeState(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".pizzahub-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrSave, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", ErrSave, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrSave, tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", ErrSave, tmpName, err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %v", ErrSave, b.path, err)
	}
	return nil
}
