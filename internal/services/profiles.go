// Package services implements the application core: the profile store, the
// session manager, the query pipeline and the history ledger. Each service
// is a single-writer owner of its state; dependencies are injected so tests
// can substitute fakes.
package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/doeshing/dbpilot-go/internal/domain"
	"github.com/doeshing/dbpilot-go/internal/ports"
)

// ProfilesKey names the durable record holding the saved profiles.
const ProfilesKey = "db_connections"

// ProfileStore owns the saved connection profiles and is the sole writer
// to their durable record.
type ProfileStore struct {
	store  ports.KeyValueStore
	logger ports.Logger

	mu       sync.Mutex
	profiles []domain.ConnectionProfile
	onRemove []func(id string)
}

// NewProfileStore builds a store over the given backend.
func NewProfileStore(store ports.KeyValueStore, logger ports.Logger) *ProfileStore {
	return &ProfileStore{store: store, logger: logger}
}

// OnRemove registers a hook invoked after a profile has been removed.
// The session manager uses this to tear down the active session when its
// profile disappears.
func (s *ProfileStore) OnRemove(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRemove = append(s.onRemove, fn)
}

// Add validates the fields, assigns a fresh identifier, appends the profile
// and persists the full collection. Nothing is mutated when validation
// fails.
func (s *ProfileStore) Add(fields domain.ProfileFields) (string, error) {
	if err := fields.Validate(); err != nil {
		return "", err
	}

	profile := domain.ConnectionProfile{
		ID:       "conn_" + uuid.NewString(),
		Name:     fields.Name,
		Host:     fields.Host,
		Port:     fields.Port,
		User:     fields.User,
		Password: fields.Password,
		Database: fields.Database,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = append(s.profiles, profile)
	if err := s.persistLocked(); err != nil {
		s.profiles = s.profiles[:len(s.profiles)-1]
		return "", fmt.Errorf("persist profiles: %w", err)
	}
	return profile.ID, nil
}

// Remove deletes the matching profile. Removing an unknown id is a no-op,
// not an error; removing the active profile disconnects the session via
// the registered hooks.
func (s *ProfileStore) Remove(id string) error {
	s.mu.Lock()
	idx := -1
	for i, p := range s.profiles {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.profiles = append(s.profiles[:idx], s.profiles[idx+1:]...)
	err := s.persistLocked()
	hooks := append([]func(string){}, s.onRemove...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(id)
	}
	if err != nil {
		return fmt.Errorf("persist profiles: %w", err)
	}
	return nil
}

// List returns the profiles in insertion order.
func (s *ProfileStore) List() []domain.ConnectionProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ConnectionProfile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// Get looks a profile up by id.
func (s *ProfileStore) Get(id string) (domain.ConnectionProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.ID == id {
			return p, true
		}
	}
	return domain.ConnectionProfile{}, false
}

// Restore loads the durable collection. Corrupt data is logged and treated
// as empty, never as a fatal error.
func (s *ProfileStore) Restore() error {
	value, ok, err := s.store.Get(ProfilesKey)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}
	if !ok {
		return nil
	}

	var profiles []domain.ConnectionProfile
	if err := json.Unmarshal([]byte(value), &profiles); err != nil {
		corrupt := &domain.CorruptStateError{Key: ProfilesKey, Err: err}
		s.logger.Warn("discarding corrupt profile store", map[string]interface{}{"error": corrupt.Error()})
		return nil
	}

	s.mu.Lock()
	s.profiles = profiles
	s.mu.Unlock()
	return nil
}

func (s *ProfileStore) persistLocked() error {
	data, err := json.Marshal(s.profiles)
	if err != nil {
		return err
	}
	return s.store.Set(ProfilesKey, string(data))
}
