package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestProvisioningMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewProvisioningMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.Record(ctx, "created", "success", 120*time.Millisecond)
	m.Record(ctx, "created", "success", 80*time.Millisecond)
	m.Record(ctx, "updated", "failure", 10*time.Millisecond)
	m.RecordOrphanRecovered(ctx)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	counts := map[string]int64{}
	var orphans int64
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			sum, ok := md.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				switch md.Name {
				case "member_provisioning_requests_total":
					op, _ := dp.Attributes.Value(attribute.Key("operation"))
					outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
					counts[op.AsString()+"/"+outcome.AsString()] += dp.Value
				case "member_provisioning_orphans_recovered_total":
					orphans += dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(2), counts["created/success"])
	assert.Equal(t, int64(1), counts["updated/failure"])
	assert.Equal(t, int64(1), orphans)
}

func TestProvisioningMetrics_NilIsSafe(t *testing.T) {
	var m *ProvisioningMetrics
	assert.NotPanics(t, func() {
		m.Record(context.Background(), "created", "success", time.Second)
		m.RecordOrphanRecovered(context.Background())
	})
}

func TestNewProvisioningMetrics_NoopMeter(t *testing.T) {
	m, err := NewProvisioningMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestDisabledProviders(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	tp, err := NewTracerProvider(ctx, Config{Enabled: false}, log)
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	tp.EnableSpanProfiles()
	assert.NoError(t, tp.Shutdown(ctx))

	mp, err := NewMeterProvider(ctx, MetricsConfig{Enabled: false}, log)
	require.NoError(t, err)
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(ctx))

	p, err := NewProfiler(ProfilerConfig{Enabled: false}, log)
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresServerAddress(t *testing.T) {
	_, err := NewProfiler(ProfilerConfig{Enabled: true}, zap.NewNop())
	assert.Error(t, err)
}

func TestSamplerFor(t *testing.T) {
	assert.Contains(t, samplerFor(1).Description(), "AlwaysOn")
	assert.Contains(t, samplerFor(0).Description(), "AlwaysOff")
	assert.Contains(t, samplerFor(0.5).Description(), "TraceIDRatioBased")
}
