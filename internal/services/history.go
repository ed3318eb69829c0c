package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/doeshing/dbpilot-go/internal/domain"
	"github.com/doeshing/dbpilot-go/internal/ports"
)

// HistoryKey names the durable record holding the query history.
const HistoryKey = "query_history"

// HistoryLedger owns the append-only log of past successful queries,
// newest first. Entries are never edited; growth is unbounded, which is
// fine for a single interactive user.
type HistoryLedger struct {
	store  ports.KeyValueStore
	logger ports.Logger

	mu      sync.Mutex
	entries []domain.HistoryEntry
}

// NewHistoryLedger builds a ledger over the given backend.
func NewHistoryLedger(store ports.KeyValueStore, logger ports.Logger) *HistoryLedger {
	return &HistoryLedger{store: store, logger: logger}
}

// Append prepends the entry and persists the full list.
func (l *HistoryLedger) Append(entry domain.HistoryEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]domain.HistoryEntry{entry}, l.entries...)
	if err := l.persistLocked(); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// List returns all entries, newest first.
func (l *HistoryLedger) List() []domain.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Search filters entries whose question or generated SQL contains term,
// case-insensitively. An empty term returns the full list.
func (l *HistoryLedger) Search(term string) []domain.HistoryEntry {
	if term == "" {
		return l.List()
	}
	needle := strings.ToLower(term)

	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.HistoryEntry
	for _, entry := range l.entries {
		if strings.Contains(strings.ToLower(entry.Question), needle) ||
			strings.Contains(strings.ToLower(entry.SQL), needle) {
			out = append(out, entry)
		}
	}
	return out
}

// Len reports the number of entries.
func (l *HistoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear empties the ledger and removes the durable record entirely.
func (l *HistoryLedger) Clear() error {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
	if err := l.store.Delete(HistoryKey); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Restore loads the durable history. Corrupt data is logged and treated as
// empty.
func (l *HistoryLedger) Restore() error {
	value, ok, err := l.store.Get(HistoryKey)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if !ok {
		return nil
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		corrupt := &domain.CorruptStateError{Key: HistoryKey, Err: err}
		l.logger.Warn("discarding corrupt history", map[string]interface{}{"error": corrupt.Error()})
		return nil
	}

	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
	return nil
}

func (l *HistoryLedger) persistLocked() error {
	data, err := json.Marshal(l.entries)
	if err != nil {
		return err
	}
	return l.store.Set(HistoryKey, string(data))
}
