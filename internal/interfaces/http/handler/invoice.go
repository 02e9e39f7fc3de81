package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	billingapp "github.com/erp/feeengine/internal/application/billing"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SignatureHeader carries hex(HMAC-SHA256(body)) on document callbacks
const SignatureHeader = "X-Signature"

// InvoiceService bills accrued fee events and tracks payments
type InvoiceService interface {
	Create(ctx context.Context, actor shared.Actor, req billingapp.CreateInvoiceRequest) (*billingapp.CreateInvoiceResult, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*billingapp.InvoiceResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter billingapp.InvoiceListFilter) ([]billingapp.InvoiceResponse, int64, error)
	RecordPayment(ctx context.Context, actor shared.Actor, invoiceID uuid.UUID, req billingapp.RecordPaymentRequest) (*billingapp.InvoiceResponse, error)
	Cancel(ctx context.Context, actor shared.Actor, invoiceID uuid.UUID) (*billingapp.InvoiceResponse, error)
}

// DocumentCallbackService applies document generation callbacks
type DocumentCallbackService interface {
	HandleCallback(ctx context.Context, payload []byte, signature string) (*billingapp.CallbackResult, error)
}

// InvoiceHandler handles invoice endpoints and the document callback
type InvoiceHandler struct {
	BaseHandler
	invoices  InvoiceService
	callbacks DocumentCallbackService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoices InvoiceService, callbacks DocumentCallbackService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, callbacks: callbacks}
}

// Create godoc
// @ID           createInvoice
// @Summary      Create an invoice from accrued fee events
// @Description  Aggregates accrued fee events into an invoice. The invoice is created even when document generation cannot be requested; that case is a warning.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CreateInvoiceRequest true "Request body"
// @Success      201 {object} APIResponse[billingapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /billing/invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req billingapp.CreateInvoiceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.invoices.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	warnings := make([]dto.Warning, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, dto.Warning{Code: w.Code, Message: w.Message})
	}
	h.CreatedWithWarnings(c, result.Invoice, warnings)
}

// GetByID godoc
// @ID           getInvoice
// @Summary      Get an invoice
// @Description  Returns one invoice with lines and payments
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[billingapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /billing/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.GetByID(c.Request.Context(), actor.TenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// List godoc
// @ID           listInvoices
// @Summary      List invoices
// @Description  Returns invoices matching the query
// @Tags         invoices
// @Produce      json
// @Param        investor_id query string false "Investor ID" format(uuid)
// @Param        deal_id query string false "Deal ID" format(uuid)
// @Param        status query string false "Status"
// @Param        from_date query string false "From date (YYYY-MM-DD)"
// @Param        to_date query string false "To date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]billingapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /billing/invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var filter billingapp.InvoiceListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	p := dto.NewPagination(filter.Page, filter.PageSize)
	filter.Page, filter.PageSize = p.Page, p.PageSize

	invoices, total, err := h.invoices.List(c.Request.Context(), actor.TenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, invoices, total, p.Page, p.PageSize)
}

// RecordPayment godoc
// @ID           recordInvoicePayment
// @Summary      Record an invoice payment
// @Description  Records money received against an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Param        request body billingapp.RecordPaymentRequest true "Request body"
// @Success      200 {object} APIResponse[billingapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /billing/invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req billingapp.RecordPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	inv, err := h.invoices.RecordPayment(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// Cancel godoc
// @ID           cancelInvoice
// @Summary      Cancel an invoice
// @Description  Cancels an unpaid invoice and releases its fee events
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID" format(uuid)
// @Success      200 {object} APIResponse[billingapp.InvoiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /billing/invoices/{id}/cancel [post]
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoices.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inv)
}

// DocumentCallback godoc
// @ID           invoiceDocumentCallback
// @Summary      Receive an invoice document callback
// @Description  Receives the collaborator's generation result. It is unauthenticated; the body signature is the credential.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        X-Signature header string true "Hex HMAC-SHA256 of the raw body"
// @Param        request body billingapp.DocumentCallbackPayload true "Request body"
// @Success      200 {object} APIResponse[billingapp.CallbackResult]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /billing/invoices/document-callback [post]
func (h *InvoiceHandler) DocumentCallback(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBodyTooLarge, "Callback body exceeds maximum allowed size")
			return
		}
		h.BadRequest(c, "Failed to read callback body")
		return
	}
	result, err := h.callbacks.HandleCallback(c.Request.Context(), payload, c.GetHeader(SignatureHeader))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
