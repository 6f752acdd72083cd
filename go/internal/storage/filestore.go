package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the on-disk document name
const DefaultFileName = "fntz-user-data.json"

// FileStore keeps the document in a single JSON file. Writes go through a
// temp file in the same directory followed by a rename, so readers never
// observe a half-written document.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, DefaultFileName)}
}

// Path returns the document's location on disk
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return data, true, nil
}

func (s *FileStore) Save(ctx context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailure, err)
	}

	tmp, err := os.CreateTemp(dir, DefaultFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailure, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageWriteFailure, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageWriteFailure, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageWriteFailure, err)
	}
	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrStorageWriteFailure, err)
	}
	return nil
}
