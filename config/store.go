package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes named configuration documents. Read returns an
// error matching fs.ErrNotExist when a document does not exist.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
}

// DirStore keeps documents as files in a local directory.
type DirStore struct {
	Dir string
}

func NewDirStore(dir string) *DirStore {
	return &DirStore{Dir: dir}
}

func (s *DirStore) Read(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Dir, name))
}

// Write creates the directory if it doesn't exist.
func (s *DirStore) Write(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(filepath.Join(s.Dir, name), data, 0o644)
}
