package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doeshing/dbpilot-go/internal/domain"
)

func newSessionFixture(t *testing.T, tester *stubTester) (*ProfileStore, *SessionManager, *memStore) {
	t.Helper()
	backend := newMemStore()
	profiles := NewProfileStore(backend, testLogger())
	session := NewSessionManager(profiles, tester, backend, testLogger())
	profiles.OnRemove(session.HandleProfileRemoved)
	return profiles, session, backend
}

func TestActivateUnknownProfileLeavesStateUnchanged(t *testing.T) {
	_, session, backend := newSessionFixture(t, &stubTester{})

	ok, err := session.Activate(context.Background(), "conn_999")

	if ok {
		t.Fatal("Activate(unknown) = true, want false")
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("Activate(unknown) error = %v, want ErrProfileNotFound", err)
	}
	snap := session.Snapshot()
	if snap.Status != domain.StatusDisconnected || snap.LastError != "" {
		t.Fatalf("snapshot = %+v, want untouched disconnected state", snap)
	}
	if backend.has(ActiveProfileKey) {
		t.Fatal("active profile persisted for a failed lookup")
	}
}

func TestActivateConnectsAndPersistsActiveProfile(t *testing.T) {
	profiles, session, backend := newSessionFixture(t, &stubTester{})
	id := addTestProfile(profiles, "Test")

	ok, err := session.Activate(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("Activate() = %v, %v, want true, nil", ok, err)
	}

	snap := session.Snapshot()
	if snap.Status != domain.StatusConnected {
		t.Fatalf("status = %v, want connected", snap.Status)
	}
	if snap.Profile == nil || snap.Profile.ID != id {
		t.Fatalf("current profile = %+v, want id %s", snap.Profile, id)
	}
	if snap.LastError != "" {
		t.Fatalf("LastError = %q, want empty", snap.LastError)
	}
	if value, ok, _ := backend.Get(ActiveProfileKey); !ok || value != id {
		t.Fatalf("persisted active id = %q, %v, want %q", value, ok, id)
	}
}

func TestActivateHandshakeFailureDoesNotPersist(t *testing.T) {
	profiles, session, backend := newSessionFixture(t, &stubTester{err: errors.New("host unreachable")})
	id := addTestProfile(profiles, "Test")

	ok, err := session.Activate(context.Background(), id)
	if ok {
		t.Fatal("Activate() = true, want false on handshake failure")
	}
	if err == nil {
		t.Fatal("Activate() error = nil, want handshake error")
	}

	snap := session.Snapshot()
	if snap.Status != domain.StatusDisconnected {
		t.Fatalf("status = %v, want disconnected", snap.Status)
	}
	if snap.LastError == "" {
		t.Fatal("LastError empty, want handshake message")
	}
	if snap.Profile != nil {
		t.Fatalf("current profile = %+v, want nil", snap.Profile)
	}
	if backend.has(ActiveProfileKey) {
		t.Fatal("active profile persisted despite handshake failure")
	}
}

func TestActivateClearsPreviousErrorOnNextAttempt(t *testing.T) {
	tester := &stubTester{err: errors.New("boom")}
	profiles, session, _ := newSessionFixture(t, tester)
	id := addTestProfile(profiles, "Test")

	if _, err := session.Activate(context.Background(), id); err == nil {
		t.Fatal("expected first activation to fail")
	}

	tester.err = nil
	if ok, err := session.Activate(context.Background(), id); !ok || err != nil {
		t.Fatalf("second Activate() = %v, %v, want true, nil", ok, err)
	}
	if snap := session.Snapshot(); snap.LastError != "" {
		t.Fatalf("LastError = %q after successful retry, want empty", snap.LastError)
	}
}

func TestDeactivateClearsDurableRecord(t *testing.T) {
	profiles, session, backend := newSessionFixture(t, &stubTester{})
	id := addTestProfile(profiles, "Test")

	if _, err := session.Activate(context.Background(), id); err != nil {
		t.Fatal(err)
	}
	session.Deactivate()

	snap := session.Snapshot()
	if snap.Status != domain.StatusDisconnected || snap.Profile != nil {
		t.Fatalf("snapshot after deactivate = %+v", snap)
	}
	if backend.has(ActiveProfileKey) {
		t.Fatal("durable active-profile record survived deactivate")
	}
}

func TestRemovingActiveProfileDisconnects(t *testing.T) {
	profiles, session, backend := newSessionFixture(t, &stubTester{})
	id := addTestProfile(profiles, "Test")

	if _, err := session.Activate(context.Background(), id); err != nil {
		t.Fatal(err)
	}
	if err := profiles.Remove(id); err != nil {
		t.Fatal(err)
	}

	snap := session.Snapshot()
	if snap.Status != domain.StatusDisconnected {
		t.Fatalf("status = %v after removing active profile, want disconnected", snap.Status)
	}
	if backend.has(ActiveProfileKey) {
		t.Fatal("durable active-profile record survived removal")
	}
}

func TestRemovingInactiveProfileKeepsSession(t *testing.T) {
	profiles, session, _ := newSessionFixture(t, &stubTester{})
	active := addTestProfile(profiles, "Active")
	other := addTestProfile(profiles, "Other")

	if _, err := session.Activate(context.Background(), active); err != nil {
		t.Fatal(err)
	}
	if err := profiles.Remove(other); err != nil {
		t.Fatal(err)
	}

	if snap := session.Snapshot(); snap.Status != domain.StatusConnected {
		t.Fatalf("status = %v, want still connected", snap.Status)
	}
}

func TestRestoreOnStartupReconnects(t *testing.T) {
	backend := newMemStore()
	profiles := NewProfileStore(backend, testLogger())
	id := addTestProfile(profiles, "Test")
	if err := backend.Set(ActiveProfileKey, id); err != nil {
		t.Fatal(err)
	}

	session := NewSessionManager(profiles, &stubTester{}, backend, testLogger())
	session.RestoreOnStartup(context.Background())

	snap := session.Snapshot()
	if snap.Status != domain.StatusConnected || snap.Profile == nil || snap.Profile.ID != id {
		t.Fatalf("snapshot after restore = %+v, want connected to %s", snap, id)
	}
}

func TestRestoreOnStartupFailureIsSilent(t *testing.T) {
	backend := newMemStore()
	profiles := NewProfileStore(backend, testLogger())
	if err := backend.Set(ActiveProfileKey, "conn_gone"); err != nil {
		t.Fatal(err)
	}

	session := NewSessionManager(profiles, &stubTester{}, backend, testLogger())
	session.RestoreOnStartup(context.Background())

	snap := session.Snapshot()
	if snap.Status != domain.StatusDisconnected {
		t.Fatalf("status = %v, want disconnected", snap.Status)
	}
	if snap.LastError != "" {
		t.Fatalf("LastError = %q, want empty: startup failure is silent", snap.LastError)
	}
}

func TestActivateSingleFlightSameProfileAwaits(t *testing.T) {
	tester := &stubTester{release: make(chan struct{}), started: make(chan struct{})}
	profiles, session, _ := newSessionFixture(t, tester)
	id := addTestProfile(profiles, "Test")

	firstOK := make(chan bool)
	go func() {
		ok, _ := session.Activate(context.Background(), id)
		firstOK <- ok
	}()
	<-tester.started

	secondOK := make(chan bool)
	go func() {
		ok, _ := session.Activate(context.Background(), id)
		secondOK <- ok
	}()
	// Give the second caller time to park on the in-flight attempt before
	// the handshake completes.
	time.Sleep(20 * time.Millisecond)
	close(tester.release)

	if !<-firstOK || !<-secondOK {
		t.Fatal("expected both callers to observe success")
	}
	if calls := tester.callCount(); calls != 1 {
		t.Fatalf("handshake ran %d times, want 1", calls)
	}
}

func TestActivateRejectsConcurrentDifferentProfile(t *testing.T) {
	tester := &stubTester{release: make(chan struct{}), started: make(chan struct{})}
	profiles, session, _ := newSessionFixture(t, tester)
	first := addTestProfile(profiles, "First")
	second := addTestProfile(profiles, "Second")

	done := make(chan struct{})
	go func() {
		session.Activate(context.Background(), first)
		close(done)
	}()
	<-tester.started

	ok, err := session.Activate(context.Background(), second)
	if ok || !errors.Is(err, domain.ErrActivationInFlight) {
		t.Fatalf("concurrent Activate = %v, %v, want false, ErrActivationInFlight", ok, err)
	}

	close(tester.release)
	<-done
}
