// Package kvstore provides implementations of query.Storage.
//
// Memory keeps values in process memory and suits a single server instance.
// File keeps one file per key so snapshots survive restarts.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/hotel-site/room-filter/internal/infrastructure/retry"
	"github.com/hotel-site/room-filter/internal/query"
)

// Memory is an in-memory key-value store. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements query.Storage.
func (m *Memory) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", query.ErrNotFound
	}
	return v, nil
}

// Set implements query.Storage.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// File stores each key as a file in a directory. Writes go to a temporary
// file that is renamed into place, so readers never see partial values.
// Transient I/O failures are retried.
type File struct {
	dir   string
	retry retry.Config
}

// NewFile creates a File store rooted at dir, creating the directory if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("kvstore: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: create %s: %w", dir, err)
	}
	return &File{dir: dir, retry: retry.StorageConfig}, nil
}

// Dir returns the directory holding the files.
func (f *File) Dir() string { return f.dir }

// Get implements query.Storage.
func (f *File) Get(key string) (string, error) {
	path := f.path(key)
	return retry.DoWithResult(context.Background(), func() (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", retry.NewPermanent(query.ErrNotFound)
			}
			return "", classify(err)
		}
		return string(data), nil
	}, f.retry)
}

// Set implements query.Storage.
func (f *File) Set(key, value string) error {
	path := f.path(key)
	return retry.Do(context.Background(), func() error {
		return classify(f.write(path, value))
	}, f.retry)
}

// Delete removes key. Deleting a missing key is not an error.
func (f *File) Delete(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("kvstore: delete %q: %w", key, err)
	}
	return nil
}

func (f *File) write(path, value string) error {
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// path maps a key to a file name that cannot escape the directory.
func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

// classify marks errors that retrying cannot fix as permanent.
func classify(err error) error {
	if err != nil && (errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission)) {
		return retry.NewPermanent(err)
	}
	return err
}

var (
	_ query.Storage = (*Memory)(nil)
	_ query.Storage = (*File)(nil)
)
