package handler

import (
	"context"

	feeapp "github.com/erp/feeengine/internal/application/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FeePlanService is the plan management surface used by FeePlanHandler
type FeePlanService interface {
	Create(ctx context.Context, actor shared.Actor, req feeapp.CreateFeePlanRequest) (*feeapp.FeePlanResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*feeapp.FeePlanResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter feeapp.FeePlanListFilter) ([]feeapp.FeePlanResponse, int64, error)
	AddComponent(ctx context.Context, tenantID, planID uuid.UUID, req feeapp.AddComponentRequest) (*feeapp.FeePlanResponse, error)
	RemoveComponent(ctx context.Context, tenantID, planID, componentID uuid.UUID) (*feeapp.FeePlanResponse, error)
	Activate(ctx context.Context, tenantID, planID uuid.UUID) (*feeapp.FeePlanResponse, error)
	SetDefault(ctx context.Context, tenantID, planID uuid.UUID) (*feeapp.FeePlanResponse, error)
	Archive(ctx context.Context, tenantID, planID uuid.UUID) (*feeapp.FeePlanResponse, error)
	Amend(ctx context.Context, actor shared.Actor, planID uuid.UUID) (*feeapp.FeePlanResponse, error)
	ListEvents(ctx context.Context, tenantID uuid.UUID, filter feeapp.FeeEventListFilter) ([]feeapp.FeeEventResponse, int64, error)
}

// FeeGenerator (re)generates fee events for one allocation
type FeeGenerator interface {
	GenerateForAllocation(ctx context.Context, tenantID, allocationID uuid.UUID, opts feeapp.GenerateOptions) (*feeapp.GenerationResult, error)
}

// FeePlanHandler handles fee plan and fee event endpoints
type FeePlanHandler struct {
	BaseHandler
	plans     FeePlanService
	generator FeeGenerator
}

// NewFeePlanHandler creates a new FeePlanHandler
func NewFeePlanHandler(plans FeePlanService, generator FeeGenerator) *FeePlanHandler {
	return &FeePlanHandler{plans: plans, generator: generator}
}

// Create godoc
// @ID           createFeePlan
// @Summary      Create a fee plan
// @Description  Creates a fee plan from explicit components or termsheet percentages
// @Tags         fee-plans
// @Accept       json
// @Produce      json
// @Param        request body feeapp.CreateFeePlanRequest true "Request body"
// @Success      201 {object} APIResponse[feeapp.FeePlanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fee-plans [post]
func (h *FeePlanHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req feeapp.CreateFeePlanRequest
	if !h.bindJSON(c, &req) {
		return
	}
	plan, err := h.plans.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// GetByID godoc
// @ID           getFeePlan
// @Summary      Get a fee plan
// @Description  Returns one plan with its components
// @Tags         fee-plans
// @Produce      json
// @Param        id path string true "Fee plan ID" format(uuid)
// @Success      200 {object} APIResponse[feeapp.FeePlanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fee-plans/{id} [get]
func (h *FeePlanHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	plan, err := h.plans.GetByID(c.Request.Context(), actor.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// List godoc
// @ID           listFeePlans
// @Summary      List fee plans
// @Description  Returns plans matching the query
// @Tags         fee-plans
// @Produce      json
// @Param        deal_id query string false "Deal ID" format(uuid)
// @Param        termsheet_id query string false "Termsheet ID" format(uuid)
// @Param        status query string false "Status"
// @Param        counterparty_type query string false "Counterparty type"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]feeapp.FeePlanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fee-plans [get]
func (h *FeePlanHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter feeapp.FeePlanListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	p := dto.NewPagination(filter.Page, filter.PageSize)
	filter.Page, filter.PageSize = p.Page, p.PageSize

	plans, total, err := h.plans.List(c.Request.Context(), actor.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, plans, total, p.Page, p.PageSize)
}

// AddComponent godoc
// @ID           addFeePlanComponent
// @Summary      Add a fee component
// @Description  Appends a component to a draft plan
// @Tags         fee-plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Fee plan ID" format(uuid)
// @Param        request body feeapp.AddComponentRequest true "Request body"
// @Success      200 {object} APIResponse[feeapp.FeePlanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fee-plans/{id}/components [post]
func (h *FeePlanHandler) AddComponent(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req feeapp.AddComponentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	plan, err := h.plans.AddComponent(c.Request.Context(), actor.TenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// RemoveComponent godoc
// @ID           removeFeePlanComponent
// @Summary      Remove a fee component
// @Description  Drops a component from a draft plan
// @Tags         fee-plans
// @Produce      json
// @Param        id path string true "Fee plan ID" format(uuid)
// @Param        component_id path string true "Fee component ID" format(uuid)
// @Success      200 {object} APIResponse[feeapp.FeePlanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fee-plans/{id}/components/{component_id} [delete]
func (h *FeePlanHandler) RemoveComponent(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	componentID, ok := h.pathID(c, "component_id")
	if !ok {
		return
	}
	plan, err := h.plans.RemoveComponent(c.Request.Context(), actor.TenantID, id, componentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Activate godoc
// @ID           activateFeePlan
// @Summary      Activate a fee plan
// @Description  Makes a draft plan usable for fee generation
// @Tags         fee-plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Fee plan ID" format(uuid)
// @Success      200 {object} APIResponse[feeapp.FeePlanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fee-plans/{id}/activate [post]
func (h *FeePlanHandler) Activate(c *gin.Context) {
	h.transition(c, h.plans.Activate)
}

// SetDefault godoc
// @ID           setDefaultFeePlan
// @Summary      Make a fee plan the deal default
// @Description  Makes the plan the deal's default
// @Tags         fee-plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Fee plan ID" format(uuid)
// @Success      200 {object} APIResponse[feeapp.FeePlanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fee-plans/{id}/set-default [post]
func (h *FeePlanHandler) SetDefault(c *gin.Context) {
	h.transition(c, h.plans.SetDefault)
}

// Archive godoc
// @ID           archiveFeePlan
// @Summary      Archive a fee plan
// @Description  Retires a plan
// @Tags         fee-plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Fee plan ID" format(uuid)
// @Success      200 {object} APIResponse[feeapp.FeePlanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fee-plans/{id}/archive [post]
func (h *FeePlanHandler) Archive(c *gin.Context) {
	h.transition(c, h.plans.Archive)
}

func (h *FeePlanHandler) transition(c *gin.Context, fn func(ctx context.Context, tenantID, planID uuid.UUID) (*feeapp.FeePlanResponse, error)) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	plan, err := fn(c.Request.Context(), actor.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// Amend godoc
// @ID           amendFeePlan
// @Summary      Amend a locked fee plan
// @Description  Creates the next revision of a locked plan
// @Tags         fee-plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Fee plan ID" format(uuid)
// @Success      201 {object} APIResponse[feeapp.FeePlanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fee-plans/{id}/amend [post]
func (h *FeePlanHandler) Amend(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	plan, err := h.plans.Amend(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, plan)
}

// ListEvents godoc
// @ID           listFeeEvents
// @Summary      List fee events
// @Description  Returns fee events matching the query
// @Tags         fee-events
// @Produce      json
// @Param        allocation_id query string false "Allocation ID" format(uuid)
// @Param        investor_id query string false "Investor ID" format(uuid)
// @Param        deal_id query string false "Deal ID" format(uuid)
// @Param        status query string false "Status"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]feeapp.FeeEventResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /fee-events [get]
func (h *FeePlanHandler) ListEvents(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter feeapp.FeeEventListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	p := dto.NewPagination(filter.Page, filter.PageSize)
	filter.Page, filter.PageSize = p.Page, p.PageSize

	events, total, err := h.plans.ListEvents(c.Request.Context(), actor.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, events, total, p.Page, p.PageSize)
}

// Generate godoc
// @ID           generateFeeEvents
// @Summary      Generate fee events for an allocation
// @Description  (Re)generates the fee events of one allocation. Existing events are kept.
// @Tags         fee-events
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID" format(uuid)
// @Param        request body feeapp.GenerateRequest false "Request body"
// @Success      200 {object} APIResponse[feeapp.GenerationResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /subscriptions/{id}/fee-events [post]
func (h *FeePlanHandler) Generate(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req feeapp.GenerateRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	result, err := h.generator.GenerateForAllocation(c.Request.Context(), actor.TenantID, id, feeapp.GenerateOptions{
		Profit:        req.ProfitAmount,
		HighWaterMark: req.HighWaterMark,
		ElapsedDays:   req.ElapsedDays,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
