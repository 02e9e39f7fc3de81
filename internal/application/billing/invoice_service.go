package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/fee"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/domain/shared/valueobject"
	"github.com/erp/feeengine/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Audit actions recorded by the invoice service
const (
	AuditActionInvoiceCreated   = "invoice.created"
	AuditActionInvoicePayment   = "invoice.payment_recorded"
	AuditActionInvoiceCancelled = "invoice.cancelled"
)

// InvoiceServiceConfig holds the dependencies of InvoiceService
type InvoiceServiceConfig struct {
	InvoiceRepo       billing.InvoiceRepository
	FeeEventRepo      fee.FeeEventRepository
	DocumentGenerator billing.DocumentGenerator
	EventPublisher    shared.EventPublisher
	AuditSink         shared.AuditSink
	// CallbackURL is where the document collaborator posts its result
	CallbackURL string
	Logger      *zap.Logger
	Now         func() time.Time
}

// InvoiceService aggregates accrued fee events into invoices
type InvoiceService struct {
	invoiceRepo       billing.InvoiceRepository
	feeEventRepo      fee.FeeEventRepository
	documentGenerator billing.DocumentGenerator
	eventPublisher    shared.EventPublisher
	auditSink         shared.AuditSink
	callbackURL       string
	logger            *zap.Logger
	now               func() time.Time
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(cfg InvoiceServiceConfig) *InvoiceService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = shared.Now
	}
	return &InvoiceService{
		invoiceRepo:       cfg.InvoiceRepo,
		feeEventRepo:      cfg.FeeEventRepo,
		documentGenerator: cfg.DocumentGenerator,
		eventPublisher:    cfg.EventPublisher,
		auditSink:         cfg.AuditSink,
		callbackURL:       cfg.CallbackURL,
		logger:            logger,
		now:               now,
	}
}

// Create bills the given accrued fee events plus any custom lines.
// The invoice is persisted before the fee events are marked invoiced; if the lines
// or the fee event update fail the invoice is deleted again. The document request
// is sent last and its failure only produces a warning.
func (s *InvoiceService) Create(ctx context.Context, actor shared.Actor, req CreateInvoiceRequest) (*CreateInvoiceResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create",
		telemetry.SpanAttrTenantID, actor.TenantID,
		telemetry.SpanAttrInvestorID, req.InvestorID,
	)
	defer span.End()

	result, err := s.create(ctx, actor, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, result.Invoice.ID,
		telemetry.SpanAttrInvoiceNumber, result.Invoice.InvoiceNumber,
	)
	return result, nil
}

func (s *InvoiceService) create(ctx context.Context, actor shared.Actor, req CreateInvoiceRequest) (*CreateInvoiceResult, error) {
	eventIDs := uniqueIDs(req.FeeEventIDs)
	if len(eventIDs) == 0 {
		return nil, shared.ErrInvalidInput.WithMessage("At least one fee event is required")
	}

	events, err := s.loadBillableEvents(ctx, actor.TenantID, req, eventIDs)
	if err != nil {
		return nil, err
	}

	currency := valueobject.Currency(strings.ToUpper(req.Currency))
	if currency == "" {
		currency = events[0].Currency
	}
	lines := make([]billing.InvoiceLine, 0, len(events)+len(req.CustomLines))
	for i := range events {
		if events[i].Currency != currency {
			return nil, shared.ErrInvalidInput.WithMessage(
				fmt.Sprintf("Fee event %s is in %s, invoice is in %s", events[i].ID, events[i].Currency, currency))
		}
		line, err := billing.NewFeeEventLine(&events[i])
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	for _, custom := range req.CustomLines {
		line, err := billing.NewCustomLine(custom.Description, custom.Quantity, custom.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	issueDate := s.now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	sequence, err := s.invoiceRepo.NextSequence(ctx, actor.TenantID, issueDate.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	inv, err := billing.NewInvoice(actor, billing.NewInvoiceInput{
		InvoiceNumber: billing.FormatInvoiceNumber(issueDate.Year(), sequence),
		InvestorID:    req.InvestorID,
		DealID:        req.DealID,
		Currency:      currency,
		IssueDate:     issueDate,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
		Lines:         lines,
	})
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	if err := s.invoiceRepo.CreateLines(ctx, inv); err != nil {
		s.compensate(ctx, inv, err)
		return nil, fmt.Errorf("failed to create invoice lines: %w", err)
	}
	marked, err := s.feeEventRepo.MarkInvoiced(ctx, actor.TenantID, eventIDs, inv.ID, s.now())
	if err != nil || marked != int64(len(eventIDs)) {
		s.compensate(ctx, inv, err)
		if err == nil || errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, shared.ErrConflict.WithMessage("Some fee events were invoiced concurrently")
		}
		return nil, fmt.Errorf("failed to mark fee events invoiced: %w", err)
	}

	s.publish(ctx, inv)
	s.audit(ctx, actor, AuditActionInvoiceCreated, inv, map[string]any{
		"invoice_number": inv.InvoiceNumber,
		"fee_events":     len(eventIDs),
		"total":          inv.Total.String(),
	})

	s.logger.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("total", inv.Total.String()),
		zap.Int("lines", len(inv.Lines)),
	)

	result := &CreateInvoiceResult{}
	if warning := s.requestDocument(ctx, inv); warning != nil {
		result.Warnings = append(result.Warnings, *warning)
	}
	result.Invoice = ToInvoiceResponse(inv, s.now())
	return result, nil
}

// loadBillableEvents loads the requested events and checks they are accrued and
// belong to the invoice's investor and deal
func (s *InvoiceService) loadBillableEvents(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest, ids []uuid.UUID) ([]fee.FeeEvent, error) {
	events, err := s.feeEventRepo.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]fee.FeeEvent, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	ordered := make([]fee.FeeEvent, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			return nil, shared.ErrNotFound.WithMessage("Fee event not found").WithRef(id.String())
		}
		if !e.IsAccrued() {
			return nil, shared.ErrInvalidState.WithMessage(fmt.Sprintf("Fee event %s is already invoiced", e.ID)).WithRef(e.ID.String())
		}
		if e.InvestorID != req.InvestorID {
			return nil, shared.ErrInvalidInput.WithMessage(fmt.Sprintf("Fee event %s belongs to another investor", e.ID))
		}
		if req.DealID != nil && e.DealID != *req.DealID {
			return nil, shared.ErrInvalidInput.WithMessage(fmt.Sprintf("Fee event %s belongs to another deal", e.ID))
		}
		ordered = append(ordered, e)
	}
	return ordered, nil
}

func (s *InvoiceService) compensate(ctx context.Context, inv *billing.Invoice, cause error) {
	if err := s.invoiceRepo.Delete(ctx, inv.TenantID, inv.ID); err != nil {
		s.logger.Error("failed to delete partially created invoice",
			zap.String("invoice_id", inv.ID.String()),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return
	}
	s.logger.Warn("invoice creation rolled back",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.NamedError("cause", cause),
	)
}

// requestDocument asks the collaborator to render the invoice
func (s *InvoiceService) requestDocument(ctx context.Context, inv *billing.Invoice) *Warning {
	if s.documentGenerator == nil {
		return nil
	}
	if err := s.documentGenerator.RequestDocument(ctx, billing.NewDocumentRequest(inv, s.callbackURL)); err != nil {
		s.logger.Warn("document generation request failed",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err),
		)
		if inv.MarkDocumentFailed(err.Error(), s.now()) {
			if _, saveErr := s.invoiceRepo.SaveGeneration(ctx, inv, billing.GenerationStatusRequested); saveErr != nil {
				s.logger.Error("failed to record document generation failure",
					zap.String("invoice_id", inv.ID.String()),
					zap.Error(saveErr),
				)
			}
		}
		return &Warning{
			Code:    shared.ErrDependency.Code,
			Message: fmt.Sprintf("Invoice created but document generation could not be requested: %v", err),
		}
	}
	return nil
}

// GetByID returns an invoice with lines and payments
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(inv, s.now())
	return &resp, nil
}

// List lists invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := billing.InvoiceFilter{
		Filter:     shared.PageFilter(filter.Page, filter.PageSize),
		InvestorID: filter.InvestorID,
		DealID:     filter.DealID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}
	if filter.Status != "" {
		status := billing.InvoiceStatus(filter.Status)
		domainFilter.Status = &status
	}

	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	items := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, ToInvoiceResponse(&invoices[i], now))
	}
	return items, total, nil
}

// RecordPayment applies a payment to a sent invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, actor shared.Actor, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, actor.TenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	paidAt := s.now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	payment, err := inv.RecordPayment(req.Amount, paidAt, req.Reference)
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.AddPayment(ctx, inv, payment); err != nil {
		return nil, err
	}

	s.publish(ctx, inv)
	s.audit(ctx, actor, AuditActionInvoicePayment, inv, map[string]any{
		"amount":      payment.Amount.String(),
		"reference":   payment.Reference,
		"balance_due": inv.BalanceDue().String(),
	})
	resp := ToInvoiceResponse(inv, s.now())
	return &resp, nil
}

// Cancel cancels an unpaid invoice and returns its fee events to accrued
func (s *InvoiceService) Cancel(ctx context.Context, actor shared.Actor, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, actor.TenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := inv.Cancel(); err != nil {
		return nil, err
	}
	released, err := s.invoiceRepo.SaveCancelled(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel invoice: %w", err)
	}

	s.audit(ctx, actor, AuditActionInvoiceCancelled, inv, map[string]any{
		"invoice_number":      inv.InvoiceNumber,
		"released_fee_events": released,
	})
	resp := ToInvoiceResponse(inv, s.now())
	return &resp, nil
}

func (s *InvoiceService) publish(ctx context.Context, inv *billing.Invoice) {
	events := inv.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish invoice events",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *InvoiceService) audit(ctx context.Context, actor shared.Actor, action string, inv *billing.Invoice, metadata map[string]any) {
	if s.auditSink == nil {
		return
	}
	entry := shared.NewAuditEntry(actor, action, "invoice", inv.ID.String(), metadata)
	if err := s.auditSink.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry",
			zap.String("action", action),
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err),
		)
	}
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
