package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/doeshing/dbpilot-go/internal/domain"
	"github.com/doeshing/dbpilot-go/internal/ports"
)

// ActiveProfileKey names the durable record holding the active profile id.
const ActiveProfileKey = "current_connection_id"

// ProfileLookup is the read-only view the session manager has of the
// profile store. The manager may look profiles up but never mutates the
// collection.
type ProfileLookup interface {
	Get(id string) (domain.ConnectionProfile, bool)
}

type activation struct {
	id   string
	done chan struct{}
	ok   bool
	err  error
}

// SessionManager owns the single active session. At most one profile is
// current at any time; status is connected exactly when a current profile
// is set.
type SessionManager struct {
	profiles ProfileLookup
	tester   ports.ConnectionTester
	store    ports.KeyValueStore
	logger   ports.Logger

	mu       sync.Mutex
	status   domain.SessionStatus
	current  *domain.ConnectionProfile
	lastErr  string
	inflight *activation
}

// NewSessionManager builds a manager over the given collaborators.
func NewSessionManager(profiles ProfileLookup, tester ports.ConnectionTester, store ports.KeyValueStore, logger ports.Logger) *SessionManager {
	return &SessionManager{
		profiles: profiles,
		tester:   tester,
		store:    store,
		logger:   logger,
	}
}

// Activate connects the session to the identified profile. An unknown id
// fails immediately with no state change. Activation is single-flight: a
// concurrent call for the same id awaits the in-flight attempt, a call for
// a different id is rejected rather than raced.
func (m *SessionManager) Activate(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	if fl := m.inflight; fl != nil {
		m.mu.Unlock()
		if fl.id != id {
			return false, domain.ErrActivationInFlight
		}
		select {
		case <-fl.done:
			return fl.ok, fl.err
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	profile, ok := m.profiles.Get(id)
	if !ok {
		m.mu.Unlock()
		return false, domain.ErrProfileNotFound
	}

	fl := &activation{id: id, done: make(chan struct{})}
	m.inflight = fl
	m.status = domain.StatusConnecting
	m.current = nil
	m.lastErr = ""
	m.mu.Unlock()

	err := m.tester.Test(ctx, profile)

	m.mu.Lock()
	m.inflight = nil
	if err == nil {
		// The profile may have been removed while the handshake was in
		// flight; a session must never point at a missing profile.
		if _, still := m.profiles.Get(id); !still {
			err = domain.ErrProfileNotFound
		}
	}
	if err != nil {
		m.status = domain.StatusDisconnected
		m.current = nil
		m.lastErr = err.Error()
		if m.lastErr == "" {
			m.lastErr = "connection failed"
		}
		fl.ok, fl.err = false, fmt.Errorf("activate %s: %w", id, err)
		m.mu.Unlock()
		close(fl.done)
		return fl.ok, fl.err
	}

	copied := profile
	m.status = domain.StatusConnected
	m.current = &copied
	m.lastErr = ""
	m.mu.Unlock()

	if err := m.store.Set(ActiveProfileKey, id); err != nil {
		m.logger.Warn("persist active profile failed", map[string]interface{}{"error": err.Error()})
	}

	fl.ok = true
	close(fl.done)
	return true, nil
}

// Deactivate disconnects from any state, clearing the active profile and
// its durable record.
func (m *SessionManager) Deactivate() {
	m.mu.Lock()
	m.status = domain.StatusDisconnected
	m.current = nil
	m.lastErr = ""
	m.mu.Unlock()

	if err := m.store.Delete(ActiveProfileKey); err != nil {
		m.logger.Warn("clear active profile failed", map[string]interface{}{"error": err.Error()})
	}
}

// RestoreOnStartup re-activates the profile recorded from a previous run,
// if any. Startup failure is silent: the session ends disconnected with no
// error attached.
func (m *SessionManager) RestoreOnStartup(ctx context.Context) {
	id, ok, err := m.store.Get(ActiveProfileKey)
	if err != nil {
		m.logger.Warn("read active profile failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if !ok || id == "" {
		return
	}

	if _, err := m.Activate(ctx, id); err != nil {
		m.logger.Info("startup reconnect failed", map[string]interface{}{"profile": id, "error": err.Error()})
		m.mu.Lock()
		m.lastErr = ""
		m.mu.Unlock()
	}
}

// Snapshot returns an observable copy of the session state.
func (m *SessionManager) Snapshot() domain.SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := domain.SessionSnapshot{
		Status:    m.status,
		LastError: m.lastErr,
	}
	if m.current != nil {
		copied := *m.current
		snap.Profile = &copied
	}
	return snap
}

// CurrentProfileID returns the active profile id, empty when disconnected.
func (m *SessionManager) CurrentProfileID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ""
	}
	return m.current.ID
}

// HandleProfileRemoved is the profile store removal hook: removing the
// active profile tears the session down.
func (m *SessionManager) HandleProfileRemoved(id string) {
	m.mu.Lock()
	active := m.current != nil && m.current.ID == id
	m.mu.Unlock()
	if active {
		m.Deactivate()
	}
}
