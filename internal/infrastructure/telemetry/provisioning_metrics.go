package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	AttrOperation = attribute.Key("operation")
	AttrOutcome   = attribute.Key("outcome")
)

// ProvisioningMetrics counts provisioning calls by operation and outcome.
type ProvisioningMetrics struct {
	requests *Counter
	orphans  *Counter
	duration *Histogram
}

// NewProvisioningMetrics registers the provisioning instruments on meter.
func NewProvisioningMetrics(meter metric.Meter) (*ProvisioningMetrics, error) {
	requests, err := NewCounter(meter, "member_provisioning_requests_total",
		"Member provisioning requests by operation and outcome", "{request}")
	if err != nil {
		return nil, err
	}
	orphans, err := NewCounter(meter, "member_provisioning_orphans_recovered_total",
		"Identities without a profile that were reused on create", "{identity}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, "member_provisioning_duration_seconds",
		"Member provisioning latency", "s", DurationBuckets)
	if err != nil {
		return nil, err
	}
	return &ProvisioningMetrics{requests: requests, orphans: orphans, duration: duration}, nil
}

// Record counts one call. Nil receivers are ignored.
func (m *ProvisioningMetrics) Record(ctx context.Context, operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrOperation.String(operation), AttrOutcome.String(outcome)}
	m.requests.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, elapsed, attrs...)
}

// RecordOrphanRecovered counts one reused identity. Nil receivers are ignored.
func (m *ProvisioningMetrics) RecordOrphanRecovered(ctx context.Context) {
	if m == nil {
		return
	}
	m.orphans.Inc(ctx)
}
