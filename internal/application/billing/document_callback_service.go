package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/erp/feeengine/internal/domain/billing"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrCallbackVerificationFailed is returned when the callback signature does not match
	ErrCallbackVerificationFailed = shared.NewDomainError("INVALID_SIGNATURE", "Document callback signature verification failed")
	// ErrCallbackInvalidPayload is returned when the callback body cannot be parsed
	ErrCallbackInvalidPayload = shared.NewDomainError("INVALID_PAYLOAD", "Document callback payload is invalid")
)

// SignatureVerifier checks the X-Signature of an inbound callback body
type SignatureVerifier interface {
	Verify(payload []byte, signature string) error
}

// DocumentCallbackServiceConfig holds the dependencies of DocumentCallbackService
type DocumentCallbackServiceConfig struct {
	InvoiceRepo      billing.InvoiceRepository
	Verifier         SignatureVerifier
	IdempotencyStore shared.IdempotencyStore
	IdempotencyTTL   time.Duration
	EventPublisher   shared.EventPublisher
	Logger           *zap.Logger
	Now              func() time.Time
}

// DocumentCallbackService applies document generation results posted back by the collaborator.
// Deliveries may repeat or arrive late; each (invoice, outcome) is applied at most once.
type DocumentCallbackService struct {
	invoiceRepo      billing.InvoiceRepository
	verifier         SignatureVerifier
	idempotencyStore shared.IdempotencyStore
	idempotencyTTL   time.Duration
	eventPublisher   shared.EventPublisher
	logger           *zap.Logger
	now              func() time.Time
}

// NewDocumentCallbackService creates a new DocumentCallbackService
func NewDocumentCallbackService(cfg DocumentCallbackServiceConfig) *DocumentCallbackService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.IdempotencyTTL
	if ttl <= 0 {
		ttl = shared.DefaultIdempotencyConfig().TTL
	}
	now := cfg.Now
	if now == nil {
		now = shared.Now
	}
	return &DocumentCallbackService{
		invoiceRepo:      cfg.InvoiceRepo,
		verifier:         cfg.Verifier,
		idempotencyStore: cfg.IdempotencyStore,
		idempotencyTTL:   ttl,
		eventPublisher:   cfg.EventPublisher,
		logger:           logger,
		now:              now,
	}
}

// HandleCallback verifies and applies one callback delivery
func (s *DocumentCallbackService) HandleCallback(ctx context.Context, payload []byte, signature string) (*CallbackResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "document_callback")
	defer span.End()

	result, err := s.handleCallback(ctx, payload, signature)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrInvoiceID, result.InvoiceID,
		"processed", result.Processed,
	)
	return result, nil
}

func (s *DocumentCallbackService) handleCallback(ctx context.Context, payload []byte, signature string) (*CallbackResult, error) {
	if s.verifier != nil {
		if err := s.verifier.Verify(payload, signature); err != nil {
			s.logger.Warn("document callback signature verification failed", zap.Error(err))
			return nil, ErrCallbackVerificationFailed
		}
	}

	var callback DocumentCallbackPayload
	if err := json.Unmarshal(payload, &callback); err != nil {
		return nil, ErrCallbackInvalidPayload.WithMessage(fmt.Sprintf("Document callback payload is invalid: %v", err))
	}
	if callback.InvoiceID == uuid.Nil {
		return nil, ErrCallbackInvalidPayload.WithMessage("invoice_id is required")
	}
	if !billing.GenerationStatus(callback.Status).IsValid() || callback.Status == string(billing.GenerationStatusRequested) {
		return nil, ErrCallbackInvalidPayload.WithMessage(fmt.Sprintf("unknown status %q", callback.Status))
	}

	result := &CallbackResult{InvoiceID: callback.InvoiceID, Status: callback.Status}
	key := shared.IdempotencyKey("doc-callback", callback.InvoiceID.String(), callback.Status)
	if s.alreadyProcessed(ctx, key) {
		result.Message = "callback already processed"
		return result, nil
	}

	applied, err := s.apply(ctx, &callback)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Acknowledge so the collaborator stops retrying
			s.logger.Warn("document callback for unknown invoice",
				zap.String("invoice_id", callback.InvoiceID.String()))
			result.Message = "invoice not found"
			return result, nil
		}
		return nil, err
	}

	s.markProcessed(ctx, key)
	result.Processed = applied
	if !applied {
		result.Message = "no change"
	}
	return result, nil
}

func (s *DocumentCallbackService) apply(ctx context.Context, callback *billing.DocumentCallback) (bool, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, callback.InvoiceID)
	if err != nil {
		return false, err
	}

	at := callback.CompletedAt
	if at.IsZero() {
		at = s.now()
	}
	expected := inv.GenerationStatus

	var changed bool
	if callback.Succeeded() {
		changed, err = inv.MarkDocumentGenerated(callback.DocumentURL, at)
		if err != nil {
			return false, err
		}
	} else {
		changed = inv.MarkDocumentFailed(callback.Error, at)
	}
	if !changed {
		return false, nil
	}

	won, err := s.invoiceRepo.SaveGeneration(ctx, inv, expected)
	if err != nil {
		return false, fmt.Errorf("failed to save document generation: %w", err)
	}
	if !won {
		s.logger.Info("document callback lost to a concurrent delivery",
			zap.String("invoice_id", inv.ID.String()))
		return false, nil
	}

	events := inv.PullDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish invoice events",
				zap.String("invoice_id", inv.ID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("document callback applied",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("generation_status", string(inv.GenerationStatus)),
		zap.String("status", string(inv.Status)),
	)
	return true, nil
}

func (s *DocumentCallbackService) alreadyProcessed(ctx context.Context, key string) bool {
	if s.idempotencyStore == nil {
		return false
	}
	processed, err := s.idempotencyStore.IsProcessed(ctx, key)
	if err != nil {
		// The CAS on generation status still protects the invoice
		s.logger.Warn("idempotency check failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return processed
}

func (s *DocumentCallbackService) markProcessed(ctx context.Context, key string) {
	if s.idempotencyStore == nil {
		return
	}
	if _, err := s.idempotencyStore.MarkProcessed(ctx, key, s.idempotencyTTL); err != nil {
		s.logger.Warn("failed to mark callback processed", zap.String("key", key), zap.Error(err))
	}
}
