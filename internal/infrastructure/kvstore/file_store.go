// Package kvstore provides durable key/value backends for the application
// stores. Keys name independent records (saved profiles, active profile id,
// query history); values are opaque serialized text.
package kvstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/dbpilot-go/internal/ports"
)

// FileStore keeps each key in its own file under a state directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Get reads the value for key. A missing key is not an error.
func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.keyPath(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes the value for key. Values may carry credentials, so files are
// written owner-readable only.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.keyPath(key), []byte(value), 0o600)
}

// Delete removes the record for key entirely. Deleting an absent key is a
// no-op.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.keyPath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Dir returns the backing directory.
func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) keyPath(key string) string {
	return filepath.Join(f.dir, key+".json")
}

var _ ports.KeyValueStore = (*FileStore)(nil)
