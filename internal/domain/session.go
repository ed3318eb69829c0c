package domain

// SessionStatus is the tri-state connection status of the single active
// session. A failed activation is reported as StatusDisconnected with
// a non-empty LastError on the snapshot; it is never persisted.
type SessionStatus int

const (
	StatusDisconnected SessionStatus = iota
	StatusConnecting
	StatusConnected
)

func (s SessionStatus) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// SessionSnapshot is an observable copy of the session state. Profile is
// nil unless Status is StatusConnected.
type SessionSnapshot struct {
	Status    SessionStatus
	Profile   *ConnectionProfile
	LastError string
}
