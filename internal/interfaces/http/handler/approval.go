package handler

import (
	"context"

	approvalapp "github.com/erp/feeengine/internal/application/approval"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ApprovalService resolves approvals assigned to signers
type ApprovalService interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*approvalapp.ApprovalResponse, error)
	List(ctx context.Context, actor shared.Actor, filter approvalapp.ListFilter) ([]approvalapp.ApprovalResponse, int64, error)
	Approve(ctx context.Context, actor shared.Actor, id uuid.UUID, req approvalapp.DecisionRequest) (*approvalapp.ApprovalResponse, error)
	Reject(ctx context.Context, actor shared.Actor, id uuid.UUID, req approvalapp.DecisionRequest) (*approvalapp.ApprovalResponse, error)
}

// SweepRunner runs the termsheet-close sweep for the actor's tenant
type SweepRunner interface {
	Run(ctx context.Context, actor shared.Actor) (*approvalapp.SweepResult, error)
}

// ApprovalHandler handles approval endpoints and the manual sweep trigger
type ApprovalHandler struct {
	BaseHandler
	approvals ApprovalService
	sweep     SweepRunner
}

// NewApprovalHandler creates a new ApprovalHandler
func NewApprovalHandler(approvals ApprovalService, sweep SweepRunner) *ApprovalHandler {
	return &ApprovalHandler{approvals: approvals, sweep: sweep}
}

// GetByID godoc
// @ID           getApproval
// @Summary      Get an approval
// @Description  Returns one approval with its snapshot
// @Tags         approvals
// @Produce      json
// @Param        id path string true "Approval ID" format(uuid)
// @Success      200 {object} APIResponse[approvalapp.ApprovalResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals/{id} [get]
func (h *ApprovalHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.approvals.GetByID(c.Request.Context(), actor.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listApprovals
// @Summary      List approvals
// @Description  Returns approvals; mine=true limits to those assigned to the caller
// @Tags         approvals
// @Produce      json
// @Param        status query string false "Status" Enums(pending, approved, rejected)
// @Param        mine query bool false "Mine"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]approvalapp.ApprovalResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals [get]
func (h *ApprovalHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter approvalapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	p := dto.NewPagination(filter.Page, filter.PageSize)
	filter.Page, filter.PageSize = p.Page, p.PageSize

	items, total, err := h.approvals.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, p.Page, p.PageSize)
}

// Approve godoc
// @ID           approveApproval
// @Summary      Approve
// @Description  Approves a pending approval
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id path string true "Approval ID" format(uuid)
// @Param        request body approvalapp.DecisionRequest false "Request body"
// @Success      200 {object} APIResponse[approvalapp.ApprovalResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals/{id}/approve [post]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	h.decide(c, h.approvals.Approve)
}

// Reject godoc
// @ID           rejectApproval
// @Summary      Reject
// @Description  Rejects a pending approval
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Param        id path string true "Approval ID" format(uuid)
// @Param        request body approvalapp.DecisionRequest false "Request body"
// @Success      200 {object} APIResponse[approvalapp.ApprovalResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals/{id}/reject [post]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	h.decide(c, h.approvals.Reject)
}

func (h *ApprovalHandler) decide(c *gin.Context, fn func(context.Context, shared.Actor, uuid.UUID, approvalapp.DecisionRequest) (*approvalapp.ApprovalResponse, error)) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req approvalapp.DecisionRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	resp, err := fn(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RunSweep godoc
// @ID           runTermsheetCloseSweep
// @Summary      Run the termsheet-close sweep
// @Description  Runs the termsheet-close sweep now. Running it twice creates no duplicates.
// @Tags         approvals
// @Accept       json
// @Produce      json
// @Success      200 {object} APIResponse[approvalapp.SweepResult]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /approvals/termsheet-close/sweep [post]
func (h *ApprovalHandler) RunSweep(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	result, err := h.sweep.Run(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
