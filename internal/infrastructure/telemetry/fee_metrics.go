package telemetry

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FeeMetrics derives business metrics from the domain event stream.
// It subscribes to every event type and never fails a publish.
type FeeMetrics struct {
	events          *Counter
	feesAccrued     *AmountCounter
	invoicesBilled  *AmountCounter
	invoicesPaid    *AmountCounter
	commissions     *AmountCounter
	commissionMoves *Counter
	sweepDuration   *Histogram
	sweepRuns       *Counter
}

// NewFeeMetrics registers the fee engine instruments on meter
func NewFeeMetrics(meter metric.Meter) (*FeeMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	m := &FeeMetrics{}
	var err error

	if m.events, err = NewCounter(meter, "fee_domain_events_total", "Domain events published", "{events}"); err != nil {
		return nil, err
	}
	if m.feesAccrued, err = NewAmountCounter(meter, "fee_accrued_amount_total", "Fee amounts accrued"); err != nil {
		return nil, err
	}
	if m.invoicesBilled, err = NewAmountCounter(meter, "fee_invoiced_amount_total", "Invoice totals created"); err != nil {
		return nil, err
	}
	if m.invoicesPaid, err = NewAmountCounter(meter, "fee_invoice_payments_total", "Payments recorded against invoices"); err != nil {
		return nil, err
	}
	if m.commissions, err = NewAmountCounter(meter, "fee_commission_accrued_total", "Commission amounts accrued"); err != nil {
		return nil, err
	}
	if m.commissionMoves, err = NewCounter(meter, "fee_commission_transitions_total", "Commission status transitions", "{transitions}"); err != nil {
		return nil, err
	}
	if m.sweepRuns, err = NewCounter(meter, "fee_termsheet_sweep_runs_total", "Termsheet close sweep runs", "{runs}"); err != nil {
		return nil, err
	}
	m.sweepDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "fee_termsheet_sweep_duration_seconds",
		Description: "Termsheet close sweep duration",
		Unit:        "s",
		Boundaries:  []float64{0.1, 0.5, 1, 5, 15, 60, 300},
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Name identifies the handler on the event bus
func (m *FeeMetrics) Name() string { return "fee_metrics" }

// EventTypes subscribes to all events
func (m *FeeMetrics) EventTypes() []string { return nil }

// Handle implements shared.EventHandler
func (m *FeeMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	m.events.Inc(ctx, AttrEventType.String(event.EventType()))

	switch e := event.(type) {
	case *fee.FeeEventAccruedEvent:
		m.feesAccrued.Add(ctx, e.Amount.InexactFloat64(),
			AttrCurrency.String(e.Currency), AttrFeeKind.String(string(e.Kind)))
	case *billing.InvoiceCreatedEvent:
		m.invoicesBilled.Add(ctx, e.Total.InexactFloat64(), AttrCurrency.String(e.Currency))
	case *billing.InvoicePaymentRecordedEvent:
		m.invoicesPaid.Add(ctx, e.Amount.InexactFloat64())
	case *commission.CommissionAccruedEvent:
		m.commissions.Add(ctx, e.AccrualAmount.InexactFloat64(),
			AttrCurrency.String(e.Currency), AttrPartyKind.String(string(e.PartyKind)))
	case *commission.CommissionStatusChangedEvent:
		m.commissionMoves.Inc(ctx,
			AttrPartyKind.String(string(e.PartyKind)),
			AttrFromStatus.String(string(e.FromStatus)),
			AttrToStatus.String(string(e.ToStatus)))
	}
	return nil
}

// RecordSweep records one termsheet close sweep run
func (m *FeeMetrics) RecordSweep(ctx context.Context, elapsed time.Duration, err error) {
	outcome := attribute.String("outcome", "ok")
	if err != nil {
		outcome = attribute.String("outcome", "error")
	}
	m.sweepRuns.Inc(ctx, outcome)
	m.sweepDuration.RecordDuration(ctx, elapsed, outcome)
}

var _ shared.EventHandler = (*FeeMetrics)(nil)
