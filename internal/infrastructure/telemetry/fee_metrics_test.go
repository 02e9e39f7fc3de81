package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*FeeMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewFeeMetrics(provider.Meter(TracerName))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func floatTotal(t *testing.T, data metricdata.Aggregation) float64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[float64])
	require.True(t, ok, "expected a float64 sum, got %T", data)
	var total float64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func intTotal(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected an int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestFeeMetrics_Handle(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	tenantID := uuid.New()

	events := []shared.DomainEvent{
		&fee.FeeEventAccruedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(fee.EventTypeFeeEventAccrued, fee.AggregateTypeFeeEvent, uuid.New(), tenantID),
			Kind:            "subscription", Amount: decimal.RequireFromString("2000.00"), Currency: "USD",
		},
		&fee.FeeEventAccruedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(fee.EventTypeFeeEventAccrued, fee.AggregateTypeFeeEvent, uuid.New(), tenantID),
			Kind:            "management", Amount: decimal.RequireFromString("500.50"), Currency: "USD",
		},
		&billing.InvoiceCreatedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(billing.EventTypeInvoiceCreated, billing.AggregateTypeInvoice, uuid.New(), tenantID),
			Total:           decimal.RequireFromString("2500.50"), Currency: "USD",
		},
		&commission.CommissionAccruedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(commission.EventTypeCommissionAccrued, commission.AggregateTypeCommission, uuid.New(), tenantID),
			PartyKind:       commission.PartyKind("introducer"), AccrualAmount: decimal.NewFromInt(100), Currency: "USD",
		},
		&commission.CommissionStatusChangedEvent{
			BaseDomainEvent: shared.NewBaseDomainEvent(commission.EventTypeCommissionStatusChanged, commission.AggregateTypeCommission, uuid.New(), tenantID),
			PartyKind:       commission.PartyKind("introducer"), FromStatus: "accrued", ToStatus: "invoiced",
		},
	}
	for _, e := range events {
		require.NoError(t, m.Handle(ctx, e))
	}

	data := collect(t, reader)
	assert.Equal(t, int64(5), intTotal(t, data["fee_domain_events_total"]))
	assert.InDelta(t, 2500.50, floatTotal(t, data["fee_accrued_amount_total"]), 0.001)
	assert.InDelta(t, 2500.50, floatTotal(t, data["fee_invoiced_amount_total"]), 0.001)
	assert.InDelta(t, 100, floatTotal(t, data["fee_commission_accrued_total"]), 0.001)
	assert.Equal(t, int64(1), intTotal(t, data["fee_commission_transitions_total"]))
}

func TestFeeMetrics_RecordSweep(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordSweep(ctx, 2*time.Second, nil)
	m.RecordSweep(ctx, time.Second, errors.New("directory unavailable"))

	data := collect(t, reader)
	assert.Equal(t, int64(2), intTotal(t, data["fee_termsheet_sweep_runs_total"]))

	hist, ok := data["fee_termsheet_sweep_duration_seconds"].(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestFeeMetrics_Subscription(t *testing.T) {
	m, _ := newTestMetrics(t)
	assert.Empty(t, m.EventTypes())
	assert.Equal(t, "fee_metrics", m.Name())

	_, err := NewFeeMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}
