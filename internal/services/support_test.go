package services

import (
	"context"
	"sync"

	"github.com/doeshing/dbpilot-go/internal/domain"
	"github.com/doeshing/dbpilot-go/internal/pkg/logger"
)

// memStore is an in-memory KeyValueStore for tests.
type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (m *memStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

// stubTester completes the handshake with a fixed error, optionally
// blocking until released. started is closed when the first handshake
// begins, so tests can sequence concurrent callers.
type stubTester struct {
	err     error
	release chan struct{}
	started chan struct{}
	once    sync.Once
	calls   int
	mu      sync.Mutex
}

func (t *stubTester) Test(ctx context.Context, _ domain.ConnectionProfile) error {
	t.mu.Lock()
	t.calls++
	t.mu.Unlock()
	if t.started != nil {
		t.once.Do(func() { close(t.started) })
	}
	if t.release != nil {
		select {
		case <-t.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return t.err
}

func (t *stubTester) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

// stubGateway returns canned replies, optionally blocking per call.
type stubGateway struct {
	result  domain.QueryResult
	err     error
	stats   domain.DatabaseStats
	statsOK bool
	release chan struct{}
	started chan struct{}
	once    sync.Once
}

func (g *stubGateway) Query(ctx context.Context, question string) (domain.QueryResult, error) {
	if g.started != nil {
		g.once.Do(func() { close(g.started) })
	}
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return domain.QueryResult{}, ctx.Err()
		}
	}
	return g.result, g.err
}

func (g *stubGateway) Stats(ctx context.Context) (domain.DatabaseStats, error) {
	if !g.statsOK {
		return domain.DatabaseStats{}, &domain.TransportError{Op: "stats", Status: 500}
	}
	return g.stats, nil
}

func (g *stubGateway) TestConnection(ctx context.Context, _ domain.ConnectionProfile) (string, error) {
	return "Connection successful", nil
}

func testLogger() *logger.StdLogger {
	return logger.NewStd(false)
}

func addTestProfile(store *ProfileStore, name string) string {
	id, err := store.Add(domain.ProfileFields{
		Name:     name,
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Database: "mydb",
	})
	if err != nil {
		panic(err)
	}
	return id
}
