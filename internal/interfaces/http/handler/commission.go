package handler

import (
	"context"
	"net/http"
	"strconv"

	commissionapp "github.com/erp/feeengine/internal/application/commission"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CommissionService moves party commissions through their lifecycle
type CommissionService interface {
	Record(ctx context.Context, actor shared.Actor, req commissionapp.RecordCommissionRequest) (*commissionapp.CommissionResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*commissionapp.CommissionResponse, error)
	List(ctx context.Context, actor shared.Actor, filter commissionapp.CommissionListFilter) ([]commissionapp.CommissionResponse, int64, error)
	RequestInvoice(ctx context.Context, actor shared.Actor, id uuid.UUID) (*commissionapp.CommissionResponse, error)
	MarkInvoiced(ctx context.Context, actor shared.Actor, id uuid.UUID, req commissionapp.MarkInvoicedRequest) (*commissionapp.CommissionResponse, error)
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID, req commissionapp.ReasonRequest) (*commissionapp.CommissionResponse, error)
	Reject(ctx context.Context, actor shared.Actor, id uuid.UUID, req commissionapp.ReasonRequest) (*commissionapp.CommissionResponse, error)
	ConfirmPayment(ctx context.Context, actor shared.Actor, id uuid.UUID, req commissionapp.ConfirmPaymentRequest) (*commissionapp.PaymentConfirmation, error)
}

// AgreementService manages standing commission terms
type AgreementService interface {
	Create(ctx context.Context, actor shared.Actor, req commissionapp.CreateAgreementRequest) (*commissionapp.AgreementResponse, error)
	ListForDeal(ctx context.Context, tenantID, dealID uuid.UUID) ([]commissionapp.AgreementResponse, error)
	Deactivate(ctx context.Context, actor shared.Actor, id uuid.UUID) (*commissionapp.AgreementResponse, error)
}

// ReconciliationService reports and exports commissions joined with deal and investor data
type ReconciliationService interface {
	Report(ctx context.Context, actor shared.Actor, query commissionapp.ReconciliationQuery) (*commissionapp.ReconciliationReport, error)
	Export(ctx context.Context, actor shared.Actor, query commissionapp.ReconciliationQuery, archive bool) (*commissionapp.ReconciliationExport, error)
}

// CommissionHandler handles commission, agreement and reconciliation endpoints
type CommissionHandler struct {
	BaseHandler
	commissions    CommissionService
	agreements     AgreementService
	reconciliation ReconciliationService
}

// NewCommissionHandler creates a new CommissionHandler
func NewCommissionHandler(commissions CommissionService, agreements AgreementService, reconciliation ReconciliationService) *CommissionHandler {
	return &CommissionHandler{
		commissions:    commissions,
		agreements:     agreements,
		reconciliation: reconciliation,
	}
}

// Record godoc
// @ID           recordCommission
// @Summary      Record a commission
// @Description  Accrues a commission by hand
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        request body commissionapp.RecordCommissionRequest true "Request body"
// @Success      201 {object} APIResponse[commissionapp.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions [post]
func (h *CommissionHandler) Record(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req commissionapp.RecordCommissionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.commissions.Record(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID godoc
// @ID           getCommission
// @Summary      Get a commission
// @Description  Returns one commission
// @Tags         commissions
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Success      200 {object} APIResponse[commissionapp.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id} [get]
func (h *CommissionHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.commissions.GetByID(c.Request.Context(), actor.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @ID           listCommissions
// @Summary      List commissions
// @Description  Returns the commissions visible to the caller
// @Tags         commissions
// @Produce      json
// @Param        party_kind query string false "Party kind"
// @Param        party_id query string false "Party ID" format(uuid)
// @Param        deal_id query string false "Deal ID" format(uuid)
// @Param        status query string false "Status"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]commissionapp.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions [get]
func (h *CommissionHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter commissionapp.CommissionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	p := dto.NewPagination(filter.Page, filter.PageSize)
	filter.Page, filter.PageSize = p.Page, p.PageSize

	items, total, err := h.commissions.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, p.Page, p.PageSize)
}

// RequestInvoice godoc
// @ID           requestCommissionInvoice
// @Summary      Request the party's invoice
// @Description  Asks the party for an invoice
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Success      200 {object} APIResponse[commissionapp.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id}/request-invoice [post]
func (h *CommissionHandler) RequestInvoice(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.commissions.RequestInvoice(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MarkInvoiced godoc
// @ID           markCommissionInvoiced
// @Summary      Mark a commission invoiced
// @Description  Records that the party's invoice arrived
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Param        request body commissionapp.MarkInvoicedRequest false "Request body"
// @Success      200 {object} APIResponse[commissionapp.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id}/mark-invoiced [post]
func (h *CommissionHandler) MarkInvoiced(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req commissionapp.MarkInvoicedRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	resp, err := h.commissions.MarkInvoiced(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel godoc
// @ID           cancelCommission
// @Summary      Cancel a commission
// @Description  Cancels a commission before payment
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Param        request body commissionapp.ReasonRequest false "Request body"
// @Success      200 {object} APIResponse[commissionapp.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id}/cancel [post]
func (h *CommissionHandler) Cancel(c *gin.Context) {
	h.withReason(c, h.commissions.Cancel)
}

// Reject godoc
// @ID           rejectCommissionInvoice
// @Summary      Reject the party's invoice
// @Description  Rejects the party's invoice
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Param        request body commissionapp.ReasonRequest false "Request body"
// @Success      200 {object} APIResponse[commissionapp.CommissionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id}/reject [post]
func (h *CommissionHandler) Reject(c *gin.Context) {
	h.withReason(c, h.commissions.Reject)
}

func (h *CommissionHandler) withReason(c *gin.Context, fn func(context.Context, shared.Actor, uuid.UUID, commissionapp.ReasonRequest) (*commissionapp.CommissionResponse, error)) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req commissionapp.ReasonRequest
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

// ConfirmPayment godoc
// @ID           confirmCommissionPayment
// @Summary      Confirm a commission payment
// @Description  Marks an invoiced commission paid and notifies the party. Notification failures are reported in the body and never undo the payment.
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Commission ID" format(uuid)
// @Param        request body commissionapp.ConfirmPaymentRequest false "Request body"
// @Success      200 {object} APIResponse[commissionapp.PaymentConfirmation]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/{id}/confirm-payment [post]
func (h *CommissionHandler) ConfirmPayment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req commissionapp.ConfirmPaymentRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	resp, err := h.commissions.ConfirmPayment(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateAgreement godoc
// @ID           createCommissionAgreement
// @Summary      Create a commission agreement
// @Description  Records standing terms used for automatic accrual
// @Tags         commission-agreements
// @Accept       json
// @Produce      json
// @Param        request body commissionapp.CreateAgreementRequest true "Request body"
// @Success      201 {object} APIResponse[commissionapp.AgreementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commission-agreements [post]
func (h *CommissionHandler) CreateAgreement(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req commissionapp.CreateAgreementRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.agreements.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListAgreements godoc
// @ID           listCommissionAgreements
// @Summary      List a deal's commission agreements
// @Description  Returns a deal's agreements
// @Tags         commission-agreements
// @Produce      json
// @Param        id path string true "Deal ID" format(uuid)
// @Success      200 {object} APIResponse[[]commissionapp.AgreementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /deals/{id}/commission-agreements [get]
func (h *CommissionHandler) ListAgreements(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	dealID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.agreements.ListForDeal(c.Request.Context(), actor.TenantID, dealID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// DeactivateAgreement godoc
// @ID           deactivateCommissionAgreement
// @Summary      Deactivate a commission agreement
// @Description  Stops future accruals under an agreement
// @Tags         commission-agreements
// @Accept       json
// @Produce      json
// @Param        id path string true "Agreement ID" format(uuid)
// @Success      200 {object} APIResponse[commissionapp.AgreementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commission-agreements/{id}/deactivate [post]
func (h *CommissionHandler) DeactivateAgreement(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.agreements.Deactivate(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Reconciliation godoc
// @ID           getCommissionReconciliation
// @Summary      Get the commission reconciliation
// @Description  Returns one page of reconciliation rows and the filtered summary
// @Tags         reconciliation
// @Produce      json
// @Param        from_date query string false "From date (YYYY-MM-DD)"
// @Param        to_date query string false "To date (YYYY-MM-DD)"
// @Param        party_kind query string false "Party kind" Enums(partner, introducer, commercial_partner)
// @Param        party_id query string false "Party ID" format(uuid)
// @Param        deal_id query string false "Deal ID" format(uuid)
// @Param        status query string false "Status"
// @Param        limit query int false "Limit" maximum(1000)
// @Param        offset query int false "Offset"
// @Param        format query string false "Format" Enums(csv, json) default(csv)
// @Success      200 {object} APIResponse[commissionapp.ReconciliationReport]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/reconciliation [get]
func (h *CommissionHandler) Reconciliation(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var query commissionapp.ReconciliationQuery
	if !h.bindQuery(c, &query) {
		return
	}
	report, err := h.reconciliation.Report(c.Request.Context(), actor, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// ExportReconciliation godoc
// @ID           exportCommissionReconciliation
// @Summary      Export the commission reconciliation
// @Description  Streams the reconciliation as CSV (default) or JSON. archive=true also stores the file in object storage.
// @Tags         reconciliation
// @Produce      text/csv,application/json
// @Param        from_date query string false "From date (YYYY-MM-DD)"
// @Param        to_date query string false "To date (YYYY-MM-DD)"
// @Param        party_kind query string false "Party kind" Enums(partner, introducer, commercial_partner)
// @Param        party_id query string false "Party ID" format(uuid)
// @Param        deal_id query string false "Deal ID" format(uuid)
// @Param        status query string false "Status"
// @Param        limit query int false "Limit" maximum(1000)
// @Param        offset query int false "Offset"
// @Param        format query string false "Format" Enums(csv, json) default(csv)
// @Param        archive query bool false "Also store the export in object storage"
// @Success      200 {file} file "Reconciliation export"
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /commissions/reconciliation/export [get]
func (h *CommissionHandler) ExportReconciliation(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var query commissionapp.ReconciliationQuery
	if !h.bindQuery(c, &query) {
		return
	}
	archive, _ := strconv.ParseBool(c.Query("archive"))

	export, err := h.reconciliation.Export(c.Request.Context(), actor, query, archive)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	c.Header("X-Row-Count", strconv.Itoa(export.RowCount))
	if export.ArchiveURL != "" {
		c.Header("X-Archive-URL", export.ArchiveURL)
	}
	c.Data(http.StatusOK, export.ContentType, export.Body)
}
