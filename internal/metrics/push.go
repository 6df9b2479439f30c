package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the recorder's registry to a Prometheus Pushgateway.
// Batch runs exit before a scrape could happen, so they push instead of serving /metrics.
func Push(ctx context.Context, rec *Recorder, gatewayURL, job string) error {
	if gatewayURL == "" {
		return nil
	}
	gatherer := rec.Gatherer()
	if gatherer == nil {
		return errors.New("metrics: no registry to push (telemetry disabled)")
	}
	if job == "" {
		job = defaultServiceName
	}
	return push.New(gatewayURL, job).Gatherer(gatherer).PushContext(ctx)
}
