package handshake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/doeshing/dbpilot-go/internal/domain"
)

func TestSimulatedWaitsForDelay(t *testing.T) {
	tester := NewSimulated(10 * time.Millisecond)

	start := time.Now()
	if err := tester.Test(context.Background(), domain.ConnectionProfile{}); err != nil {
		t.Fatalf("Test() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("returned after %v, want at least the configured delay", elapsed)
	}
}

func TestSimulatedHonorsCancellation(t *testing.T) {
	tester := NewSimulated(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := tester.Test(ctx, domain.ConnectionProfile{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Test() error = %v, want context.Canceled", err)
	}
}

type stubGateway struct {
	err error
}

func (g *stubGateway) Query(ctx context.Context, question string) (domain.QueryResult, error) {
	return domain.QueryResult{}, nil
}

func (g *stubGateway) Stats(ctx context.Context) (domain.DatabaseStats, error) {
	return domain.DatabaseStats{}, nil
}

func (g *stubGateway) TestConnection(ctx context.Context, _ domain.ConnectionProfile) (string, error) {
	return "", g.err
}

func TestGatewayTesterPropagatesBackendResult(t *testing.T) {
	if err := NewGatewayTester(&stubGateway{}).Test(context.Background(), domain.ConnectionProfile{}); err != nil {
		t.Fatalf("Test() error = %v", err)
	}

	want := &domain.TransportError{Op: "test-connection", Message: "Access denied"}
	err := NewGatewayTester(&stubGateway{err: want}).Test(context.Background(), domain.ConnectionProfile{})
	var transport *domain.TransportError
	if !errors.As(err, &transport) || transport.Message != "Access denied" {
		t.Fatalf("Test() error = %v, want the backend's TransportError", err)
	}
}
