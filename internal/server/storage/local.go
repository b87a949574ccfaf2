package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/resumekeeper/internal/common"
	"github.com/dmitrijs2005/resumekeeper/internal/filex"
)

// LocalStore keeps blobs as files below a root directory.
type LocalStore struct {
	root string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	root, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, body io.Reader, size int64, _ string) error {
	path, err := filex.SafeJoin(s.root, key)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	return filex.WriteAtomic(path, func(f *os.File) error {
		n, err := io.Copy(f, body)
		if err != nil {
			return fmt.Errorf("write blob: %w", err)
		}
		if size >= 0 && n != size {
			return fmt.Errorf("write blob: got %d bytes, want %d", n, size)
		}
		return nil
	})
}

func (s *LocalStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := filex.SafeJoin(s.root, key)
	if err != nil {
		return nil, common.ErrorNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	path, err := filex.SafeJoin(s.root, key)
	if err != nil {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}
