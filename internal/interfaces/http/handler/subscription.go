package handler

import (
	"context"

	subscriptionapp "github.com/erp/feeengine/internal/application/subscription"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubscriptionService records allocations and moves them through their lifecycle
type SubscriptionService interface {
	Create(ctx context.Context, actor shared.Actor, req subscriptionapp.CreateSubscriptionRequest) (*subscriptionapp.SubscriptionResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*subscriptionapp.SubscriptionResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter subscriptionapp.SubscriptionListFilter) ([]subscriptionapp.SubscriptionResponse, int64, error)
	UpdateStatus(ctx context.Context, actor shared.Actor, id uuid.UUID, req subscriptionapp.UpdateStatusRequest) (*subscriptionapp.StatusUpdateResponse, error)
	BulkUpdateStatus(ctx context.Context, actor shared.Actor, req subscriptionapp.BulkUpdateStatusRequest) (*subscriptionapp.BulkUpdateResult, error)
}

// SubscriptionHandler handles subscription endpoints
type SubscriptionHandler struct {
	BaseHandler
	subscriptions SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptions SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// Create godoc
// @ID           createSubscription
// @Summary      Record a subscription
// @Description  Records an allocation. A duplicate returns 409 with the existing id as ref.
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body subscriptionapp.CreateSubscriptionRequest true "Request body"
// @Success      201 {object} APIResponse[subscriptionapp.SubscriptionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /subscriptions [post]
func (h *SubscriptionHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req subscriptionapp.CreateSubscriptionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	sub, err := h.subscriptions.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sub)
}

// GetByID godoc
// @ID           getSubscription
// @Summary      Get a subscription
// @Description  Returns one subscription
// @Tags         subscriptions
// @Produce      json
// @Param        id path string true "Subscription ID" format(uuid)
// @Success      200 {object} APIResponse[subscriptionapp.SubscriptionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sub, err := h.subscriptions.GetByID(c.Request.Context(), actor.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sub)
}

// List godoc
// @ID           listSubscriptions
// @Summary      List subscriptions
// @Description  Returns subscriptions matching the query
// @Tags         subscriptions
// @Produce      json
// @Param        investor_id query string false "Investor ID" format(uuid)
// @Param        deal_id query string false "Deal ID" format(uuid)
// @Param        termsheet_id query string false "Termsheet ID" format(uuid)
// @Param        status query string false "Status"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]subscriptionapp.SubscriptionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /subscriptions [get]
func (h *SubscriptionHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter subscriptionapp.SubscriptionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	p := dto.NewPagination(filter.Page, filter.PageSize)
	filter.Page, filter.PageSize = p.Page, p.PageSize

	subs, total, err := h.subscriptions.List(c.Request.Context(), actor.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, subs, total, p.Page, p.PageSize)
}

// UpdateStatus godoc
// @ID           updateSubscriptionStatus
// @Summary      Change a subscription's status
// @Description  Changes one subscription's status; committing generates its fee events
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID" format(uuid)
// @Param        request body subscriptionapp.UpdateStatusRequest true "Request body"
// @Success      200 {object} APIResponse[subscriptionapp.StatusUpdateResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /subscriptions/{id}/status [put]
func (h *SubscriptionHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req subscriptionapp.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.subscriptions.UpdateStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BulkUpdateStatus godoc
// @ID           bulkUpdateSubscriptionStatus
// @Summary      Change many subscriptions' status
// @Description  Changes many subscriptions at once; failures are reported per item
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body subscriptionapp.BulkUpdateStatusRequest true "Request body"
// @Success      200 {object} APIResponse[subscriptionapp.BulkUpdateResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /subscriptions/bulk-status [post]
func (h *SubscriptionHandler) BulkUpdateStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req subscriptionapp.BulkUpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.subscriptions.BulkUpdateStatus(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
