// Package handshake provides the connection testers used during session
// activation.
package handshake

import (
	"context"
	"time"

	"github.com/doeshing/dbpilot-go/internal/domain"
	"github.com/doeshing/dbpilot-go/internal/ports"
)

// Simulated stands in for a real network round trip: it waits for the
// configured delay and succeeds. Real database access belongs to the
// external backend, so this is the default tester.
type Simulated struct {
	Delay time.Duration
}

// NewSimulated builds a simulated tester.
func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{Delay: delay}
}

// Test implements ports.ConnectionTester.
func (s *Simulated) Test(ctx context.Context, _ domain.ConnectionProfile) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GatewayTester routes the handshake through the backend's test-connection
// operation, for deployments where the backend can actually probe the
// target database.
type GatewayTester struct {
	Gateway ports.DatabaseGateway
}

// NewGatewayTester builds a gateway-backed tester.
func NewGatewayTester(gateway ports.DatabaseGateway) *GatewayTester {
	return &GatewayTester{Gateway: gateway}
}

// Test implements ports.ConnectionTester.
func (g *GatewayTester) Test(ctx context.Context, profile domain.ConnectionProfile) error {
	_, err := g.Gateway.TestConnection(ctx, profile)
	return err
}

var (
	_ ports.ConnectionTester = (*Simulated)(nil)
	_ ports.ConnectionTester = (*GatewayTester)(nil)
)
