package fee

import (
	"time"

	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Fee Plan DTOs ====================

// ComponentInput describes one component of a plan. Exactly one of RatePercent,
// RateBps or FlatAmount is expected, depending on the calc method.
type ComponentInput struct {
	Kind              string           `json:"kind" binding:"required"`
	CalcMethod        string           `json:"calc_method" binding:"required"`
	RatePercent       *decimal.Decimal `json:"rate_percent"`
	RateBps           *int             `json:"rate_bps" binding:"omitempty,bps"`
	FlatAmount        *decimal.Decimal `json:"flat_amount"`
	Frequency         string           `json:"frequency"`
	HurdleRatePercent *decimal.Decimal `json:"hurdle_rate_percent"`
	HurdleRateBps     *int             `json:"hurdle_rate_bps" binding:"omitempty,bps"`
	HasHighWaterMark  bool             `json:"has_high_water_mark"`
	Description       string           `json:"description" binding:"max=500"`
}

// TermsInput holds percentages as stated on a termsheet. Each non-null entry becomes a component;
// a null entry produces no component.
type TermsInput struct {
	SubscriptionFeePercent *decimal.Decimal `json:"subscription_fee_percent"`
	ManagementFeePercent   *decimal.Decimal `json:"management_fee_percent"`
	ManagementFrequency    string           `json:"management_fee_frequency"`
	PerformanceFeePercent  *decimal.Decimal `json:"performance_fee_percent"`
	HurdleRatePercent      *decimal.Decimal `json:"hurdle_rate_percent"`
	HasHighWaterMark       bool             `json:"has_high_water_mark"`
	SpreadPerUnit          *decimal.Decimal `json:"spread_per_unit"`
	FlatFee                *decimal.Decimal `json:"flat_fee"`
}

// CreateFeePlanRequest represents a request to create a fee plan
type CreateFeePlanRequest struct {
	DealID           uuid.UUID        `json:"deal_id" binding:"required"`
	VehicleID        *uuid.UUID       `json:"vehicle_id"`
	TermsheetID      *uuid.UUID       `json:"termsheet_id"`
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	CounterpartyType string           `json:"counterparty_type"`
	Currency         string           `json:"currency"`
	Components       []ComponentInput `json:"components" binding:"dive"`
	Terms            *TermsInput      `json:"terms"`
	Activate         bool             `json:"activate"`
	MakeDefault      bool             `json:"make_default"`
}

// AddComponentRequest represents a request to add a component to a plan
type AddComponentRequest struct {
	ComponentInput
}

// FeePlanListFilter represents filter options for plan listings
type FeePlanListFilter struct {
	DealID           *uuid.UUID `form:"deal_id"`
	TermsheetID      *uuid.UUID `form:"termsheet_id"`
	Status           string     `form:"status"`
	CounterpartyType string     `form:"counterparty_type"`
	Page             int        `form:"page" binding:"omitempty,min=1"`
	PageSize         int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// FeeComponentResponse represents a component in API responses
type FeeComponentResponse struct {
	ID               uuid.UUID        `json:"id"`
	Kind             string           `json:"kind"`
	CalcMethod       string           `json:"calc_method"`
	RateBps          *int             `json:"rate_bps,omitempty"`
	FlatAmount       *decimal.Decimal `json:"flat_amount,omitempty"`
	Frequency        string           `json:"frequency"`
	HurdleRateBps    *int             `json:"hurdle_rate_bps,omitempty"`
	HasHighWaterMark bool             `json:"has_high_water_mark"`
	SortOrder        int              `json:"sort_order"`
	Description      string           `json:"description,omitempty"`
}

// FeePlanResponse represents a fee plan in API responses
type FeePlanResponse struct {
	ID               uuid.UUID              `json:"id"`
	DealID           uuid.UUID              `json:"deal_id"`
	VehicleID        *uuid.UUID             `json:"vehicle_id,omitempty"`
	TermsheetID      *uuid.UUID             `json:"termsheet_id,omitempty"`
	Name             string                 `json:"name"`
	Revision         int                    `json:"revision"`
	PreviousPlanID   *uuid.UUID             `json:"previous_plan_id,omitempty"`
	Status           string                 `json:"status"`
	IsDefault        bool                   `json:"is_default"`
	CounterpartyType string                 `json:"counterparty_type"`
	Currency         string                 `json:"currency"`
	LockedAt         *time.Time             `json:"locked_at,omitempty"`
	Components       []FeeComponentResponse `json:"components"`
	Version          int                    `json:"version"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// ToFeePlanResponse converts a domain plan to a response
func ToFeePlanResponse(p *fee.FeePlan) FeePlanResponse {
	components := make([]FeeComponentResponse, 0, len(p.Components))
	for _, c := range p.Components {
		components = append(components, FeeComponentResponse{
			ID:               c.ID,
			Kind:             string(c.Kind),
			CalcMethod:       string(c.CalcMethod),
			RateBps:          c.RateBps,
			FlatAmount:       c.FlatAmount,
			Frequency:        string(c.Frequency),
			HurdleRateBps:    c.HurdleRateBps,
			HasHighWaterMark: c.HasHighWaterMark,
			SortOrder:        c.SortOrder,
			Description:      c.Description,
		})
	}
	return FeePlanResponse{
		ID:               p.ID,
		DealID:           p.DealID,
		VehicleID:        p.VehicleID,
		TermsheetID:      p.TermsheetID,
		Name:             p.Name,
		Revision:         p.Revision,
		PreviousPlanID:   p.PreviousPlanID,
		Status:           string(p.Status),
		IsDefault:        p.IsDefault,
		CounterpartyType: string(p.CounterpartyType),
		Currency:         p.Currency.String(),
		LockedAt:         p.LockedAt,
		Components:       components,
		Version:          p.Version,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// ==================== Fee Event DTOs ====================

// GenerateRequest represents a request to (re)generate fee events for one allocation
type GenerateRequest struct {
	ProfitAmount  *decimal.Decimal `json:"profit_amount"`
	HighWaterMark *decimal.Decimal `json:"high_water_mark"`
	ElapsedDays   int              `json:"elapsed_days" binding:"min=0"`
}

// FeeEventListFilter represents filter options for fee event listings
type FeeEventListFilter struct {
	AllocationID *uuid.UUID `form:"allocation_id"`
	InvestorID   *uuid.UUID `form:"investor_id"`
	DealID       *uuid.UUID `form:"deal_id"`
	Status       string     `form:"status"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// FeeEventResponse represents a fee event in API responses
type FeeEventResponse struct {
	ID             uuid.UUID       `json:"id"`
	AllocationID   uuid.UUID       `json:"allocation_id"`
	FeeComponentID uuid.UUID       `json:"fee_component_id"`
	FeePlanID      uuid.UUID       `json:"fee_plan_id"`
	InvestorID     uuid.UUID       `json:"investor_id"`
	DealID         uuid.UUID       `json:"deal_id"`
	Kind           string          `json:"kind"`
	CalcMethod     string          `json:"calc_method"`
	RateBps        *int            `json:"rate_bps,omitempty"`
	BaseAmount     decimal.Decimal `json:"base_amount"`
	ComputedAmount decimal.Decimal `json:"computed_amount"`
	Currency       string          `json:"currency"`
	Status         string          `json:"status"`
	EventDate      time.Time       `json:"event_date"`
	InvoiceID      *uuid.UUID      `json:"invoice_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToFeeEventResponse converts a domain fee event to a response
func ToFeeEventResponse(e *fee.FeeEvent) FeeEventResponse {
	return FeeEventResponse{
		ID:             e.ID,
		AllocationID:   e.AllocationID,
		FeeComponentID: e.FeeComponentID,
		FeePlanID:      e.FeePlanID,
		InvestorID:     e.InvestorID,
		DealID:         e.DealID,
		Kind:           string(e.Kind),
		CalcMethod:     string(e.CalcMethod),
		RateBps:        e.RateBps,
		BaseAmount:     e.BaseAmount,
		ComputedAmount: e.ComputedAmount,
		Currency:       e.Currency.String(),
		Status:         string(e.Status),
		EventDate:      e.EventDate,
		InvoiceID:      e.InvoiceID,
		CreatedAt:      e.CreatedAt,
	}
}
