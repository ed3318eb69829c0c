package kvstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	if _, ok, err := store.Get("db_connections"); ok || err != nil {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := store.Set("db_connections", `[{"id":"conn_1"}]`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value, ok, err := store.Get("db_connections")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if value != `[{"id":"conn_1"}]` {
		t.Fatalf("value = %q", value)
	}

	if err := store.Delete("db_connections"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := store.Get("db_connections"); ok {
		t.Fatal("value survived Delete")
	}
	// Deleting again is a no-op.
	if err := store.Delete("db_connections"); err != nil {
		t.Fatalf("second Delete() error = %v", err)
	}
}

func TestFileStoreWritesOwnerOnly(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if err := store.Set("current_connection_id", "conn_1"); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(dir, "current_connection_id.json"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, want 600: values may carry credentials", perm)
	}
}

func TestFileStoreCreatesDirOnFirstSet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store := NewFileStore(dir)

	if err := store.Set("query_history", "[]"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, _ := store.Get("query_history"); !ok {
		t.Fatal("value not readable back")
	}
}
