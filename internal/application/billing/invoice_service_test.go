package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	invoiceRepo *MockInvoiceRepository
	eventRepo   *MockFeeEventRepository
	generator   *MockDocumentGenerator
	publisher   *MockEventPublisher
	audit       *MockAuditSink
	service     *InvoiceService
	actor       shared.Actor
	investorID  uuid.UUID
	dealID      uuid.UUID
	now         time.Time
}

func newInvoiceFixture() *invoiceFixture {
	f := &invoiceFixture{
		invoiceRepo: new(MockInvoiceRepository),
		eventRepo:   new(MockFeeEventRepository),
		generator:   new(MockDocumentGenerator),
		publisher:   new(MockEventPublisher),
		audit:       new(MockAuditSink),
		actor:       shared.Actor{TenantID: uuid.New(), UserID: uuid.New(), Roles: []string{shared.RoleStaffAdmin}},
		investorID:  uuid.New(),
		dealID:      uuid.New(),
		now:         time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC),
	}
	f.service = NewInvoiceService(InvoiceServiceConfig{
		InvoiceRepo:       f.invoiceRepo,
		FeeEventRepo:      f.eventRepo,
		DocumentGenerator: f.generator,
		EventPublisher:    f.publisher,
		AuditSink:         f.audit,
		CallbackURL:       "https://fees.example.com/api/v1/billing/invoices/document-callback",
		Now:               func() time.Time { return f.now },
	})
	return f
}

// accruedEvents builds one accrued fee event per amount for the fixture's investor and deal
func (f *invoiceFixture) accruedEvents(t *testing.T, amounts ...string) []fee.FeeEvent {
	t.Helper()
	plan, err := fee.NewFeePlan(f.actor, fee.NewFeePlanInput{DealID: f.dealID, Name: "terms"})
	require.NoError(t, err)
	events := make([]fee.FeeEvent, 0, len(amounts))
	for _, amount := range amounts {
		flat := decimal.RequireFromString(amount)
		component, err := plan.AddComponent(fee.ComponentSpec{Kind: fee.KindFlat, CalcMethod: fee.MethodFixed, FlatAmount: &flat})
		require.NoError(t, err)
		e, err := fee.NewFeeEvent(f.actor.TenantID, fee.NewFeeEventInput{
			AllocationID:   uuid.New(),
			InvestorID:     f.investorID,
			DealID:         f.dealID,
			Plan:           plan,
			Component:      component,
			ComputedAmount: flat,
			EventDate:      f.now,
		})
		require.NoError(t, err)
		events = append(events, *e)
	}
	return events
}

func eventIDs(events []fee.FeeEvent) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func (f *invoiceFixture) request(events []fee.FeeEvent) CreateInvoiceRequest {
	return CreateInvoiceRequest{
		InvestorID:  f.investorID,
		DealID:      &f.dealID,
		FeeEventIDs: eventIDs(events),
		CustomLines: []CustomLineInput{{Description: "Wire fee", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(200)}},
		DueDate:     f.now.AddDate(0, 0, 30),
		Notes:       "Q2 fees",
	}
}

func TestInvoiceService_Create(t *testing.T) {
	t.Run("aggregates fee events and custom lines", func(t *testing.T) {
		f := newInvoiceFixture()
		ctx := context.Background()
		events := f.accruedEvents(t, "400", "500", "600")
		ids := eventIDs(events)

		f.eventRepo.On("FindByIDs", ctx, f.actor.TenantID, ids).Return(events, nil)
		f.invoiceRepo.On("NextSequence", ctx, f.actor.TenantID, 2025).Return(1, nil)
		f.invoiceRepo.On("Create", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)
		f.invoiceRepo.On("CreateLines", ctx, mock.Anything).Return(nil)
		f.eventRepo.On("MarkInvoiced", ctx, f.actor.TenantID, ids, mock.Anything, f.now).Return(int64(3), nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		f.audit.On("Record", ctx, mock.MatchedBy(func(e shared.AuditEntry) bool {
			return e.Action == AuditActionInvoiceCreated
		})).Return(nil)
		var sent *billing.DocumentRequest
		f.generator.On("RequestDocument", ctx, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).(*billing.DocumentRequest) }).
			Return(nil)

		result, err := f.service.Create(ctx, f.actor, f.request(events))
		require.NoError(t, err)
		assert.Empty(t, result.Warnings)

		inv := result.Invoice
		assert.Equal(t, "INV-2025-0001", inv.InvoiceNumber)
		assert.True(t, decimal.NewFromInt(1700).Equal(inv.Total))
		assert.True(t, decimal.NewFromInt(1700).Equal(inv.BalanceDue))
		assert.Equal(t, "draft", inv.Status)
		assert.Equal(t, "requested", inv.GenerationStatus)
		require.Len(t, inv.Lines, 4)
		assert.Equal(t, "custom", inv.Lines[3].Kind)

		require.NotNil(t, sent)
		assert.Equal(t, inv.ID, sent.InvoiceID)
		assert.Len(t, sent.LineItems, 4)
		assert.Contains(t, sent.CallbackURL, "document-callback")
		f.invoiceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("document request failure is a warning", func(t *testing.T) {
		f := newInvoiceFixture()
		ctx := context.Background()
		events := f.accruedEvents(t, "1000")

		f.eventRepo.On("FindByIDs", ctx, f.actor.TenantID, mock.Anything).Return(events, nil)
		f.invoiceRepo.On("NextSequence", ctx, f.actor.TenantID, 2025).Return(7, nil)
		f.invoiceRepo.On("Create", ctx, mock.Anything).Return(nil)
		f.invoiceRepo.On("CreateLines", ctx, mock.Anything).Return(nil)
		f.eventRepo.On("MarkInvoiced", ctx, f.actor.TenantID, mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
		f.publisher.On("Publish", ctx, mock.Anything).Return(nil)
		f.audit.On("Record", ctx, mock.Anything).Return(errors.New("audit store down"))
		f.generator.On("RequestDocument", ctx, mock.Anything).Return(errors.New("connection refused"))
		var recorded *billing.Invoice
		f.invoiceRepo.On("SaveGeneration", ctx, mock.Anything, billing.GenerationStatusRequested).
			Run(func(args mock.Arguments) { recorded = args.Get(1).(*billing.Invoice) }).
			Return(true, nil)

		result, err := f.service.Create(ctx, f.actor, f.request(events))
		require.NoError(t, err)
		assert.Equal(t, "INV-2025-0007", result.Invoice.InvoiceNumber)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "DEPENDENCY_ERROR", result.Warnings[0].Code)

		assert.Equal(t, "failed", result.Invoice.GenerationStatus)
		require.NotNil(t, recorded)
		assert.Equal(t, billing.GenerationStatusFailed, recorded.GenerationStatus)
		assert.Equal(t, "connection refused", recorded.GenerationError)
		f.invoiceRepo.AssertNumberOfCalls(t, "SaveGeneration", 1)
	})

	t.Run("line failure deletes the invoice and leaves events accrued", func(t *testing.T) {
		f := newInvoiceFixture()
		ctx := context.Background()
		events := f.accruedEvents(t, "400", "500")

		f.eventRepo.On("FindByIDs", ctx, f.actor.TenantID, mock.Anything).Return(events, nil)
		f.invoiceRepo.On("NextSequence", ctx, f.actor.TenantID, 2025).Return(2, nil)
		var created *billing.Invoice
		f.invoiceRepo.On("Create", ctx, mock.Anything).
			Run(func(args mock.Arguments) { created = args.Get(1).(*billing.Invoice) }).
			Return(nil)
		f.invoiceRepo.On("CreateLines", ctx, mock.Anything).Return(errors.New("constraint violation"))
		f.invoiceRepo.On("Delete", ctx, f.actor.TenantID, mock.Anything).Return(nil)

		_, err := f.service.Create(ctx, f.actor, f.request(events))
		require.Error(t, err)
		f.invoiceRepo.AssertCalled(t, "Delete", ctx, f.actor.TenantID, created.ID)
		f.eventRepo.AssertNotCalled(t, "MarkInvoiced", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.generator.AssertNotCalled(t, "RequestDocument", mock.Anything, mock.Anything)
	})

	t.Run("events invoiced concurrently conflict", func(t *testing.T) {
		f := newInvoiceFixture()
		ctx := context.Background()
		events := f.accruedEvents(t, "400", "500")

		f.eventRepo.On("FindByIDs", ctx, f.actor.TenantID, mock.Anything).Return(events, nil)
		f.invoiceRepo.On("NextSequence", ctx, f.actor.TenantID, 2025).Return(3, nil)
		f.invoiceRepo.On("Create", ctx, mock.Anything).Return(nil)
		f.invoiceRepo.On("CreateLines", ctx, mock.Anything).Return(nil)
		f.eventRepo.On("MarkInvoiced", ctx, f.actor.TenantID, mock.Anything, mock.Anything, mock.Anything).
			Return(int64(1), shared.ErrConcurrencyConflict)
		f.invoiceRepo.On("Delete", ctx, f.actor.TenantID, mock.Anything).Return(nil)

		_, err := f.service.Create(ctx, f.actor, f.request(events))
		assert.ErrorIs(t, err, shared.ErrConflict)
		f.invoiceRepo.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("already invoiced event is rejected before any write", func(t *testing.T) {
		f := newInvoiceFixture()
		ctx := context.Background()
		events := f.accruedEvents(t, "400")
		require.NoError(t, events[0].MarkInvoiced(uuid.New()))
		f.eventRepo.On("FindByIDs", ctx, f.actor.TenantID, mock.Anything).Return(events, nil)

		_, err := f.service.Create(ctx, f.actor, f.request(events))
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		f.invoiceRepo.AssertNotCalled(t, "NextSequence", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("event of another investor is rejected", func(t *testing.T) {
		f := newInvoiceFixture()
		ctx := context.Background()
		events := f.accruedEvents(t, "400")
		events[0].InvestorID = uuid.New()
		f.eventRepo.On("FindByIDs", ctx, f.actor.TenantID, mock.Anything).Return(events, nil)

		_, err := f.service.Create(ctx, f.actor, f.request(events))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown event is not found", func(t *testing.T) {
		f := newInvoiceFixture()
		ctx := context.Background()
		events := f.accruedEvents(t, "400")
		req := f.request(events)
		missing := uuid.New()
		req.FeeEventIDs = append(req.FeeEventIDs, missing)
		f.eventRepo.On("FindByIDs", ctx, f.actor.TenantID, mock.Anything).Return(events, nil)

		_, err := f.service.Create(ctx, f.actor, req)
		require.ErrorIs(t, err, shared.ErrNotFound)
		domainErr, _ := shared.AsDomainError(err)
		assert.Equal(t, missing.String(), domainErr.Ref)
	})

	t.Run("no fee events", func(t *testing.T) {
		f := newInvoiceFixture()
		_, err := f.service.Create(context.Background(), f.actor, CreateInvoiceRequest{InvestorID: f.investorID, DueDate: f.now})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestInvoiceService_RecordPayment(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()
	events := f.accruedEvents(t, "1000")
	line, err := billing.NewFeeEventLine(&events[0])
	require.NoError(t, err)
	inv, err := billing.NewInvoice(f.actor, billing.NewInvoiceInput{
		InvoiceNumber: "INV-2025-0010",
		InvestorID:    f.investorID,
		IssueDate:     f.now,
		DueDate:       f.now.AddDate(0, 0, 30),
		Lines:         []billing.InvoiceLine{line},
	})
	require.NoError(t, err)
	_, err = inv.MarkDocumentGenerated("https://docs.example.com/inv.pdf", f.now)
	require.NoError(t, err)
	inv.ClearDomainEvents()

	f.invoiceRepo.On("FindByIDForTenant", ctx, f.actor.TenantID, inv.ID).Return(inv, nil)
	f.invoiceRepo.On("AddPayment", ctx, inv, mock.AnythingOfType("*billing.InvoicePayment")).Return(nil)
	f.publisher.On("Publish", ctx, mock.Anything).Return(nil)
	f.audit.On("Record", ctx, mock.Anything).Return(nil)

	resp, err := f.service.RecordPayment(ctx, f.actor, inv.ID, RecordPaymentRequest{Amount: decimal.NewFromInt(400), Reference: "WIRE-1"})
	require.NoError(t, err)
	assert.Equal(t, "partially_paid", resp.Status)
	assert.True(t, decimal.NewFromInt(600).Equal(resp.BalanceDue))

	_, err = f.service.RecordPayment(ctx, f.actor, inv.ID, RecordPaymentRequest{Amount: decimal.NewFromInt(700)})
	require.Error(t, err)

	resp, err = f.service.RecordPayment(ctx, f.actor, inv.ID, RecordPaymentRequest{Amount: decimal.NewFromInt(600)})
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Status)
	assert.True(t, resp.BalanceDue.IsZero())
	f.invoiceRepo.AssertNumberOfCalls(t, "AddPayment", 2)
}

func TestInvoiceService_Cancel(t *testing.T) {
	newSentInvoice := func(t *testing.T, f *invoiceFixture) *billing.Invoice {
		t.Helper()
		events := f.accruedEvents(t, "1000")
		line, err := billing.NewFeeEventLine(&events[0])
		require.NoError(t, err)
		inv, err := billing.NewInvoice(f.actor, billing.NewInvoiceInput{
			InvoiceNumber: "INV-2025-0011",
			InvestorID:    f.investorID,
			IssueDate:     f.now,
			DueDate:       f.now.AddDate(0, 0, 30),
			Lines:         []billing.InvoiceLine{line},
		})
		require.NoError(t, err)
		return inv
	}

	t.Run("cancel releases fee events with the invoice", func(t *testing.T) {
		f := newInvoiceFixture()
		ctx := context.Background()
		inv := newSentInvoice(t, f)

		f.invoiceRepo.On("FindByIDForTenant", ctx, f.actor.TenantID, inv.ID).Return(inv, nil)
		f.invoiceRepo.On("SaveCancelled", ctx, inv).Return(int64(1), nil)
		var entry shared.AuditEntry
		f.audit.On("Record", ctx, mock.Anything).
			Run(func(args mock.Arguments) { entry = args.Get(1).(shared.AuditEntry) }).
			Return(nil)

		resp, err := f.service.Cancel(ctx, f.actor, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, AuditActionInvoiceCancelled, entry.Action)
		assert.EqualValues(t, 1, entry.Metadata["released_fee_events"])
		f.invoiceRepo.AssertExpectations(t)
	})

	t.Run("failed release leaves no audit trail", func(t *testing.T) {
		f := newInvoiceFixture()
		ctx := context.Background()
		inv := newSentInvoice(t, f)

		f.invoiceRepo.On("FindByIDForTenant", ctx, f.actor.TenantID, inv.ID).Return(inv, nil)
		f.invoiceRepo.On("SaveCancelled", ctx, inv).Return(int64(0), errors.New("deadlock detected"))

		_, err := f.service.Cancel(ctx, f.actor, inv.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deadlock detected")
		f.audit.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("stale invoice is a conflict", func(t *testing.T) {
		f := newInvoiceFixture()
		ctx := context.Background()
		inv := newSentInvoice(t, f)

		f.invoiceRepo.On("FindByIDForTenant", ctx, f.actor.TenantID, inv.ID).Return(inv, nil)
		f.invoiceRepo.On("SaveCancelled", ctx, inv).Return(int64(0), shared.ErrConcurrencyConflict)

		_, err := f.service.Cancel(ctx, f.actor, inv.ID)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
