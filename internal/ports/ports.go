// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core depends only on these contracts; concrete adapters
// live in the infrastructure layer. This keeps the profile store, session
// manager and query pipeline independent of the storage backend and of the
// HTTP collaborator, so tests can substitute fakes for both.
package ports

import (
	"context"

	"github.com/doeshing/dbpilot-go/internal/domain"
)

// KeyValueStore is the durable-storage capability. Values are opaque
// serialized text; the core never learns what backs a key. A missing key
// is (value "", ok false, err nil), not an error.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// DatabaseGateway is the external HTTP collaborator that translates
// natural-language questions into SQL and runs them. It is out of scope
// for this repository and treated as opaque.
type DatabaseGateway interface {
	// Query submits one question and returns the normalized wire reply.
	// A non-2xx status or unreachable backend yields a *domain.TransportError.
	Query(ctx context.Context, question string) (domain.QueryResult, error)
	// Stats fetches database-wide statistics.
	Stats(ctx context.Context) (domain.DatabaseStats, error)
	// TestConnection probes the backend with a profile's credentials and
	// returns the server's message on success.
	TestConnection(ctx context.Context, profile domain.ConnectionProfile) (string, error)
}

// ConnectionTester performs the session activation handshake.
type ConnectionTester interface {
	Test(ctx context.Context, profile domain.ConnectionProfile) error
}

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.dbpilot/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
