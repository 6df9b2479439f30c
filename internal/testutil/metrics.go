package testutil

import (
	"context"
	"testing"

	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
)

// NewTelemetry returns a recorder backed by its own Prometheus registry.
// The exporter is shut down when the test ends.
func NewTelemetry(t *testing.T) *metrics.Recorder {
	t.Helper()
	rec, _, shutdown, err := metrics.Setup(context.Background(), metrics.TelemetryConfig{
		Enabled:     true,
		ServiceName: "nba-sim-test",
	})
	if err != nil {
		t.Fatalf("metrics setup: %v", err)
	}
	t.Cleanup(func() { _ = shutdown(context.Background()) })
	return rec
}
