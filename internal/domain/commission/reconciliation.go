package commission

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconciliationFilter selects commissions for the reconciliation projection.
// Limit and Offset only page the rows; summaries and exports ignore them.
type ReconciliationFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	PartyKind  *PartyKind
	PartyID    *uuid.UUID
	DealID     *uuid.UUID
	Status     *Status
	ArrangerID *uuid.UUID // restricts the projection to deals of one arranger
	Limit      int
	Offset     int
}

// Unpaged returns a copy of the filter without pagination
func (f ReconciliationFilter) Unpaged() ReconciliationFilter {
	f.Limit = 0
	f.Offset = 0
	return f
}

// ReconciliationRow is one flattened commission line, joined with party and deal names
type ReconciliationRow struct {
	CommissionID     uuid.UUID       `json:"commission_id"`
	PartyKind        PartyKind       `json:"party_kind"`
	PartyID          uuid.UUID       `json:"party_id"`
	PartyName        string          `json:"party_name"`
	DealID           uuid.UUID       `json:"deal_id"`
	DealName         string          `json:"deal_name"`
	InvestorID       *uuid.UUID      `json:"investor_id"`
	BasisType        BasisType       `json:"basis_type"`
	RateBps          *int            `json:"rate_bps"`
	BaseAmount       decimal.Decimal `json:"base_amount"`
	AccrualAmount    decimal.Decimal `json:"accrual_amount"`
	Currency         string          `json:"currency"`
	Status           Status          `json:"status"`
	AccruedAt        time.Time       `json:"accrued_at"`
	InvoicedAt       *time.Time      `json:"invoiced_at"`
	PaidAt           *time.Time      `json:"paid_at"`
	PaymentReference string          `json:"payment_reference"`
}

// MarshalJSON emits every export column, absent values as null, plus the status label
func (r ReconciliationRow) MarshalJSON() ([]byte, error) {
	type row ReconciliationRow
	return json.Marshal(struct {
		row
		StatusLabel string `json:"status_label"`
	}{row: row(r), StatusLabel: r.Status.Label()})
}

// StatusTotal is the count and accrued sum for one status
type StatusTotal struct {
	Count  int64           `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// ReconciliationSummary totals the entire filtered set, never just one page
type ReconciliationSummary struct {
	Count            int64                  `json:"count"`
	TotalAccrued     decimal.Decimal        `json:"total_accrued"`
	TotalPaid        decimal.Decimal        `json:"total_paid"`
	TotalOutstanding decimal.Decimal        `json:"total_outstanding"`
	ByStatus         map[Status]StatusTotal `json:"by_status"`
}

// NewReconciliationSummary builds a summary from per-status totals
func NewReconciliationSummary(byStatus map[Status]StatusTotal) *ReconciliationSummary {
	s := &ReconciliationSummary{
		TotalAccrued:     decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
		ByStatus:         make(map[Status]StatusTotal, len(byStatus)),
	}
	for status, total := range byStatus {
		s.ByStatus[status] = total
		s.Count += total.Count
		if status == StatusCancelled || status == StatusRejected {
			continue
		}
		s.TotalAccrued = s.TotalAccrued.Add(total.Amount)
		if status == StatusPaid {
			s.TotalPaid = s.TotalPaid.Add(total.Amount)
		} else if status.IsOutstanding() {
			s.TotalOutstanding = s.TotalOutstanding.Add(total.Amount)
		}
	}
	return s
}

// SummarizeRows computes the summary over already loaded rows
func SummarizeRows(rows []ReconciliationRow) *ReconciliationSummary {
	byStatus := make(map[Status]StatusTotal)
	for _, r := range rows {
		t := byStatus[r.Status]
		t.Count++
		t.Amount = t.Amount.Add(r.AccrualAmount)
		byStatus[r.Status] = t
	}
	return NewReconciliationSummary(byStatus)
}
