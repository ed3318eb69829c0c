package kvstore

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/doeshing/dbpilot-go/internal/ports"
)

// SQLiteStore persists key/value records in a SQLite database. When the
// database cannot be opened it degrades to per-key files in the same
// directory rather than failing startup.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) dir/state.db.
func NewSQLiteStore(dir string) *SQLiteStore {
	path := filepath.Join(dir, "state.db")
	_ = os.MkdirAll(dir, 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`)
	return err
}

// Get implements ports.KeyValueStore.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	if s.db == nil {
		return s.fallback().Get(key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set implements ports.KeyValueStore.
func (s *SQLiteStore) Set(key, value string) error {
	if s.db == nil {
		return s.fallback().Set(key, value)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Delete implements ports.KeyValueStore.
func (s *SQLiteStore) Delete(key string) error {
	if s.db == nil {
		return s.fallback().Delete(key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) fallback() *FileStore {
	return NewFileStore(filepath.Dir(s.path))
}

var _ ports.KeyValueStore = (*SQLiteStore)(nil)
