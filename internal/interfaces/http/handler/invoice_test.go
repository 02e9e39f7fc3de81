package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	billingapp "github.com/erp/feeengine/internal/application/billing"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupInvoiceRouter(actor *shared.Actor) (*gin.Engine, *MockInvoiceService, *MockCallbackService) {
	invoices := new(MockInvoiceService)
	callbacks := new(MockCallbackService)
	h := NewInvoiceHandler(invoices, callbacks)

	router := newTestRouter(actor)
	router.POST("/billing/invoices", h.Create)
	router.GET("/billing/invoices", h.List)
	router.POST("/billing/invoices/document-callback", h.DocumentCallback)
	router.GET("/billing/invoices/:id", h.GetByID)
	router.POST("/billing/invoices/:id/payments", h.RecordPayment)
	router.POST("/billing/invoices/:id/cancel", h.Cancel)
	return router, invoices, callbacks
}

func TestInvoiceHandler_Create_WithWarning(t *testing.T) {
	actor := testActor(shared.RoleStaffAdmin)
	router, invoices, _ := setupInvoiceRouter(&actor)
	eventID := uuid.New()
	total := decimal.RequireFromString("2750.00")

	invoices.On("Create", mock.Anything, actor, mock.MatchedBy(func(req billingapp.CreateInvoiceRequest) bool {
		return len(req.FeeEventIDs) == 1 && req.FeeEventIDs[0] == eventID
	})).Return(&billingapp.CreateInvoiceResult{
		Invoice:  billingapp.InvoiceResponse{ID: uuid.New(), InvoiceNumber: "INV-2025-0007", Total: total, BalanceDue: total},
		Warnings: []billingapp.Warning{{Code: "DEPENDENCY_ERROR", Message: "document generation could not be requested"}},
	}, nil)

	w := doJSON(router, http.MethodPost, "/billing/invoices", map[string]any{
		"investor_id":   uuid.New(),
		"fee_event_ids": []uuid.UUID{eventID},
		"due_date":      time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decode(t, w)
	require.Len(t, env.Warnings, 1)
	assert.Equal(t, "DEPENDENCY_ERROR", env.Warnings[0].Code)
	var inv billingapp.InvoiceResponse
	decodeData(t, w, &inv)
	assert.Equal(t, "INV-2025-0007", inv.InvoiceNumber)
	assert.True(t, inv.Total.Equal(total))
}

func TestInvoiceHandler_Create_RequiresEvents(t *testing.T) {
	actor := testActor(shared.RoleStaffAdmin)
	router, invoices, _ := setupInvoiceRouter(&actor)

	w := doJSON(router, http.MethodPost, "/billing/invoices", map[string]any{
		"investor_id": uuid.New(),
		"due_date":    time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Create_NegativeCustomLine(t *testing.T) {
	actor := testActor(shared.RoleStaffAdmin)
	router, _, _ := setupInvoiceRouter(&actor)

	w := doJSON(router, http.MethodPost, "/billing/invoices", map[string]any{
		"investor_id":   uuid.New(),
		"fee_event_ids": []uuid.UUID{uuid.New()},
		"due_date":      time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		"custom_lines":  []map[string]any{{"description": "Legal", "quantity": "1", "unit_price": "-100"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.NotEmpty(t, env.Error.Details)
	assert.Equal(t, "unit_price", env.Error.Details[0].Field)
}

func TestInvoiceHandler_RecordPayment_ExceedsBalance(t *testing.T) {
	actor := testActor(shared.RoleStaffAdmin)
	router, invoices, _ := setupInvoiceRouter(&actor)
	id := uuid.New()

	invoices.On("RecordPayment", mock.Anything, actor, id, mock.Anything).
		Return(nil, shared.NewDomainError("EXCEEDS_BALANCE_DUE", "Payment amount 900.00 exceeds balance due 500.00"))

	w := doJSON(router, http.MethodPost, "/billing/invoices/"+id.String()+"/payments", map[string]any{"amount": "900"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "EXCEEDS_BALANCE_DUE", decode(t, w).Error.Code)
}

func TestInvoiceHandler_List(t *testing.T) {
	actor := testActor()
	router, invoices, _ := setupInvoiceRouter(&actor)

	invoices.On("List", mock.Anything, actor.TenantID, mock.MatchedBy(func(f billingapp.InvoiceListFilter) bool {
		return f.Status == "sent" && f.FromDate != nil && f.FromDate.Format("2006-01-02") == "2025-01-01" && f.Page == 1 && f.PageSize == 20
	})).Return([]billingapp.InvoiceResponse{{ID: uuid.New()}}, int64(1), nil)

	w := doJSON(router, http.MethodGet, "/billing/invoices?status=sent&from_date=2025-01-01", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, int64(1), decode(t, w).Meta.Total)
}

func TestInvoiceHandler_DocumentCallback(t *testing.T) {
	router, _, callbacks := setupInvoiceRouter(nil)
	invoiceID := uuid.New()
	body := `{"invoice_id":"` + invoiceID.String() + `","status":"completed","document_url":"https://docs/inv.pdf"}`

	callbacks.On("HandleCallback", mock.Anything, []byte(body), "abc123").
		Return(&billingapp.CallbackResult{InvoiceID: invoiceID, Status: "completed", Processed: true}, nil)

	req := httptest.NewRequest(http.MethodPost, "/billing/invoices/document-callback", strings.NewReader(body))
	req.Header.Set(SignatureHeader, "abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result billingapp.CallbackResult
	decodeData(t, w, &result)
	assert.True(t, result.Processed)
	callbacks.AssertExpectations(t)
}

func TestInvoiceHandler_DocumentCallback_BadSignature(t *testing.T) {
	router, _, callbacks := setupInvoiceRouter(nil)

	callbacks.On("HandleCallback", mock.Anything, mock.Anything, "").
		Return(nil, billingapp.ErrCallbackVerificationFailed)

	w := doJSON(router, http.MethodPost, "/billing/invoices/document-callback", `{"invoice_id":"x"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_SIGNATURE", decode(t, w).Error.Code)
}
