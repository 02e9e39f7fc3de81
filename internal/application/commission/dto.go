package commission

import (
	"time"

	"github.com/erp/feeengine/internal/domain/commission"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Commission DTOs ====================

// RecordCommissionRequest represents a manually recorded commission
type RecordCommissionRequest struct {
	PartyKind      string           `json:"party_kind" binding:"required,oneof=partner introducer commercial_partner"`
	PartyID        uuid.UUID        `json:"party_id" binding:"required"`
	DealID         uuid.UUID        `json:"deal_id" binding:"required"`
	InvestorID     *uuid.UUID       `json:"investor_id"`
	SubscriptionID *uuid.UUID       `json:"subscription_id"`
	BasisType      string           `json:"basis_type" binding:"required,oneof=invested_amount spread management_fee performance_fee"`
	RateBps        *int             `json:"rate_bps" binding:"omitempty,bps"`
	BaseAmount     decimal.Decimal  `json:"base_amount" binding:"decimal_gte0"`
	FlatAmount     *decimal.Decimal `json:"flat_amount" binding:"omitempty,decimal_gte0"`
	Currency       string           `json:"currency"`
	Notes          string           `json:"notes" binding:"max=2000"`
}

// MarkInvoicedRequest carries the party's invoice reference
type MarkInvoicedRequest struct {
	Reference string `json:"reference" binding:"max=200"`
}

// ConfirmPaymentRequest confirms payment of an invoiced commission
type ConfirmPaymentRequest struct {
	PaidAt    *time.Time `json:"paid_at"`
	Reference string     `json:"reference" binding:"max=200"`
}

// ReasonRequest carries the reason for a cancellation or rejection
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// CommissionListFilter represents filter options for commission listings
type CommissionListFilter struct {
	PartyKind string     `form:"party_kind"`
	PartyID   *uuid.UUID `form:"party_id"`
	DealID    *uuid.UUID `form:"deal_id"`
	Status    string     `form:"status"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CommissionResponse represents a commission in API responses
type CommissionResponse struct {
	ID                 uuid.UUID       `json:"id"`
	PartyKind          string          `json:"party_kind"`
	PartyID            uuid.UUID       `json:"party_id"`
	ArrangerID         *uuid.UUID      `json:"arranger_id,omitempty"`
	DealID             uuid.UUID       `json:"deal_id"`
	InvestorID         *uuid.UUID      `json:"investor_id,omitempty"`
	SubscriptionID     *uuid.UUID      `json:"subscription_id,omitempty"`
	AgreementID        *uuid.UUID      `json:"agreement_id,omitempty"`
	BasisType          string          `json:"basis_type"`
	RateBps            *int            `json:"rate_bps,omitempty"`
	BaseAmount         decimal.Decimal `json:"base_amount"`
	AccrualAmount      decimal.Decimal `json:"accrual_amount"`
	Currency           string          `json:"currency"`
	Status             string          `json:"status"`
	StatusLabel        string          `json:"status_label"`
	AccruedAt          time.Time       `json:"accrued_at"`
	InvoiceRequestedAt *time.Time      `json:"invoice_requested_at,omitempty"`
	InvoicedAt         *time.Time      `json:"invoiced_at,omitempty"`
	InvoiceReference   string          `json:"invoice_reference,omitempty"`
	PaidAt             *time.Time      `json:"paid_at,omitempty"`
	PaymentReference   string          `json:"payment_reference,omitempty"`
	PaidBy             *uuid.UUID      `json:"paid_by,omitempty"`
	CancelledAt        *time.Time      `json:"cancelled_at,omitempty"`
	RejectedAt         *time.Time      `json:"rejected_at,omitempty"`
	StatusReason       string          `json:"status_reason,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Version            int             `json:"version"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// PaymentConfirmation is the result of ConfirmPayment. Notification problems never
// undo the payment; they are reported here.
type PaymentConfirmation struct {
	Commission    CommissionResponse `json:"commission"`
	Notifications DispatchResult     `json:"notifications"`
}

// ToCommissionResponse converts a domain commission to a response
func ToCommissionResponse(c *commission.PartyCommission) CommissionResponse {
	return CommissionResponse{
		ID:                 c.ID,
		PartyKind:          string(c.PartyKind),
		PartyID:            c.PartyID,
		ArrangerID:         c.ArrangerID,
		DealID:             c.DealID,
		InvestorID:         c.InvestorID,
		SubscriptionID:     c.SubscriptionID,
		AgreementID:        c.AgreementID,
		BasisType:          string(c.BasisType),
		RateBps:            c.RateBps,
		BaseAmount:         c.BaseAmount,
		AccrualAmount:      c.AccrualAmount,
		Currency:           c.Currency.String(),
		Status:             string(c.Status),
		StatusLabel:        c.Status.Label(),
		AccruedAt:          c.AccruedAt,
		InvoiceRequestedAt: c.InvoiceRequestedAt,
		InvoicedAt:         c.InvoicedAt,
		InvoiceReference:   c.InvoiceReference,
		PaidAt:             c.PaidAt,
		PaymentReference:   c.PaymentReference,
		PaidBy:             c.PaidBy,
		CancelledAt:        c.CancelledAt,
		RejectedAt:         c.RejectedAt,
		StatusReason:       c.StatusReason,
		Notes:              c.Notes,
		Version:            c.Version,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// ==================== Agreement DTOs ====================

// CreateAgreementRequest represents standing commission terms for a party on a deal
type CreateAgreementRequest struct {
	DealID        uuid.UUID  `json:"deal_id" binding:"required"`
	PartyKind     string     `json:"party_kind" binding:"required,oneof=partner introducer commercial_partner"`
	PartyID       uuid.UUID  `json:"party_id" binding:"required"`
	BasisType     string     `json:"basis_type" binding:"required,oneof=invested_amount spread management_fee performance_fee"`
	RateBps       int        `json:"rate_bps" binding:"bps"`
	Currency      string     `json:"currency"`
	EffectiveFrom *time.Time `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to"`
}

// AgreementResponse represents an agreement in API responses
type AgreementResponse struct {
	ID            uuid.UUID  `json:"id"`
	DealID        uuid.UUID  `json:"deal_id"`
	PartyKind     string     `json:"party_kind"`
	PartyID       uuid.UUID  `json:"party_id"`
	ArrangerID    *uuid.UUID `json:"arranger_id,omitempty"`
	BasisType     string     `json:"basis_type"`
	RateBps       int        `json:"rate_bps"`
	Currency      string     `json:"currency"`
	Active        bool       `json:"active"`
	EffectiveFrom time.Time  `json:"effective_from"`
	EffectiveTo   *time.Time `json:"effective_to,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToAgreementResponse converts a domain agreement to a response
func ToAgreementResponse(a *commission.Agreement) AgreementResponse {
	return AgreementResponse{
		ID:            a.ID,
		DealID:        a.DealID,
		PartyKind:     string(a.PartyKind),
		PartyID:       a.PartyID,
		ArrangerID:    a.ArrangerID,
		BasisType:     string(a.BasisType),
		RateBps:       a.RateBps,
		Currency:      a.Currency.String(),
		Active:        a.Active,
		EffectiveFrom: a.EffectiveFrom,
		EffectiveTo:   a.EffectiveTo,
		CreatedAt:     a.CreatedAt,
	}
}

// ==================== Reconciliation DTOs ====================

// ReconciliationQuery is the reconciliation filter as received over HTTP
type ReconciliationQuery struct {
	FromDate  *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"to_date" time_format:"2006-01-02"`
	PartyKind string     `form:"party_kind" binding:"omitempty,oneof=partner introducer commercial_partner"`
	PartyID   *uuid.UUID `form:"party_id"`
	DealID    *uuid.UUID `form:"deal_id"`
	Status    string     `form:"status"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset    int        `form:"offset" binding:"omitempty,min=0"`
	Format    string     `form:"format" binding:"omitempty,oneof=csv json"`
}

// ToFilter converts the query into the domain filter
func (q ReconciliationQuery) ToFilter() commission.ReconciliationFilter {
	f := commission.ReconciliationFilter{
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
		PartyID:  q.PartyID,
		DealID:   q.DealID,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.PartyKind != "" {
		kind := commission.PartyKind(q.PartyKind)
		f.PartyKind = &kind
	}
	if q.Status != "" {
		status := commission.Status(q.Status)
		f.Status = &status
	}
	return f
}

// ReconciliationReport is one page of rows plus the summary of the whole filtered set
type ReconciliationReport struct {
	Rows    []commission.ReconciliationRow    `json:"rows"`
	Summary *commission.ReconciliationSummary `json:"summary"`
	Limit   int                               `json:"limit,omitempty"`
	Offset  int                               `json:"offset,omitempty"`
}

// ReconciliationExport is a rendered export file
type ReconciliationExport struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"-"`
	RowCount    int    `json:"row_count"`
	// ArchiveURL is set when the export was archived to object storage
	ArchiveURL string `json:"archive_url,omitempty"`
}
