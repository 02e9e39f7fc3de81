package subscription

import (
	"time"

	appfee "github.com/erp/feeengine/internal/application/fee"
	"github.com/erp/feeengine/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest represents a request to record an investor allocation
type CreateSubscriptionRequest struct {
	InvestorID       uuid.UUID       `json:"investor_id" binding:"required"`
	DealID           uuid.UUID       `json:"deal_id" binding:"required"`
	VehicleID        uuid.UUID       `json:"vehicle_id" binding:"required"`
	TermsheetID      *uuid.UUID      `json:"termsheet_id"`
	FeePlanID        *uuid.UUID      `json:"fee_plan_id"`
	CommitmentAmount decimal.Decimal `json:"commitment_amount" binding:"required,decimal_gte0"`
	UnitCount        decimal.Decimal `json:"unit_count"`
	Currency         string          `json:"currency"`
	EffectiveDate    time.Time       `json:"effective_date" binding:"required"`
}

// UpdateStatusRequest represents a status change on one subscription
type UpdateStatusRequest struct {
	Status       string           `json:"status" binding:"required,oneof=pending committed funded cancelled"`
	FundedAmount *decimal.Decimal `json:"funded_amount"`
}

// BulkUpdateStatusRequest moves many subscriptions to the same status
type BulkUpdateStatusRequest struct {
	IDs    []uuid.UUID `json:"ids" binding:"required,min=1,max=500"`
	Status string      `json:"status" binding:"required,oneof=pending committed funded cancelled"`
}

// SubscriptionListFilter represents filter options for subscription listings
type SubscriptionListFilter struct {
	InvestorID  *uuid.UUID `form:"investor_id"`
	DealID      *uuid.UUID `form:"deal_id"`
	TermsheetID *uuid.UUID `form:"termsheet_id"`
	Status      string     `form:"status"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SubscriptionResponse represents a subscription in API responses
type SubscriptionResponse struct {
	ID               uuid.UUID       `json:"id"`
	InvestorID       uuid.UUID       `json:"investor_id"`
	DealID           uuid.UUID       `json:"deal_id"`
	VehicleID        uuid.UUID       `json:"vehicle_id"`
	TermsheetID      *uuid.UUID      `json:"termsheet_id,omitempty"`
	FeePlanID        *uuid.UUID      `json:"fee_plan_id,omitempty"`
	CommitmentAmount decimal.Decimal `json:"commitment_amount"`
	FundedAmount     decimal.Decimal `json:"funded_amount"`
	UnitCount        decimal.Decimal `json:"unit_count"`
	Currency         string          `json:"currency"`
	EffectiveDate    time.Time       `json:"effective_date"`
	Status           string          `json:"status"`
	CommittedAt      *time.Time      `json:"committed_at,omitempty"`
	FundedAt         *time.Time      `json:"funded_at,omitempty"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// StatusUpdateResponse is the outcome of a single status change.
// FeeGeneration is set when the change committed the subscription.
type StatusUpdateResponse struct {
	Subscription  SubscriptionResponse     `json:"subscription"`
	FeeGeneration *appfee.GenerationResult `json:"fee_generation,omitempty"`
	Warning       string                   `json:"warning,omitempty"`
}

// BulkUpdateResult aggregates a bulk status update
type BulkUpdateResult struct {
	Processed     int                   `json:"processed"`
	Updated       int                   `json:"updated"`
	Unchanged     int                   `json:"unchanged"`
	Failed        int                   `json:"failed"`
	Failures      []appfee.BatchFailure `json:"failures,omitempty"`
	FeeGeneration *appfee.BatchResult   `json:"fee_generation,omitempty"`
}

// ToSubscriptionResponse converts a domain subscription to a response
func ToSubscriptionResponse(s *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:               s.ID,
		InvestorID:       s.InvestorID,
		DealID:           s.DealID,
		VehicleID:        s.VehicleID,
		TermsheetID:      s.TermsheetID,
		FeePlanID:        s.FeePlanID,
		CommitmentAmount: s.CommitmentAmount,
		FundedAmount:     s.FundedAmount,
		UnitCount:        s.UnitCount,
		Currency:         s.Currency.String(),
		EffectiveDate:    s.EffectiveDate,
		Status:           string(s.Status),
		CommittedAt:      s.CommittedAt,
		FundedAt:         s.FundedAt,
		CancelledAt:      s.CancelledAt,
		Version:          s.Version,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
