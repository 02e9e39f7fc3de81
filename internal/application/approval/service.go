package approval

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/approval"
	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Audit actions recorded by the approval service
const (
	AuditActionApproved = "approval.approved"
	AuditActionRejected = "approval.rejected"
)

// DecisionRequest carries the signer's note
type DecisionRequest struct {
	Note string `json:"note" binding:"max=2000"`
}

// ListFilter represents filter options for approval listings
type ListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Mine     bool   `form:"mine"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ApprovalResponse represents an approval in API responses
type ApprovalResponse struct {
	ID           uuid.UUID              `json:"id"`
	EntityType   string                 `json:"entity_type"`
	EntityID     uuid.UUID              `json:"entity_id"`
	Status       string                 `json:"status"`
	AssignedTo   uuid.UUID              `json:"assigned_to"`
	Snapshot     approval.CloseSnapshot `json:"snapshot"`
	DecidedBy    *uuid.UUID             `json:"decided_by,omitempty"`
	DecidedAt    *time.Time             `json:"decided_at,omitempty"`
	DecisionNote string                 `json:"decision_note,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
}

// ToApprovalResponse converts a domain approval to a response
func ToApprovalResponse(a *approval.Approval) ApprovalResponse {
	return ApprovalResponse{
		ID:           a.ID,
		EntityType:   a.EntityType.String(),
		EntityID:     a.EntityID,
		Status:       a.Status.String(),
		AssignedTo:   a.AssignedTo,
		Snapshot:     a.Snapshot,
		DecidedBy:    a.DecidedBy,
		DecidedAt:    a.DecidedAt,
		DecisionNote: a.DecisionNote,
		CreatedAt:    a.CreatedAt,
	}
}

// Service lets signers review and decide approvals
type Service struct {
	repo           approval.Repository
	eventPublisher shared.EventPublisher
	auditSink      shared.AuditSink
	logger         *zap.Logger
}

// NewService creates a new approval Service
func NewService(repo approval.Repository, eventPublisher shared.EventPublisher, auditSink shared.AuditSink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, eventPublisher: eventPublisher, auditSink: auditSink, logger: logger}
}

// GetByID returns one approval
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ApprovalResponse, error) {
	a, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToApprovalResponse(a)
	return &resp, nil
}

// List returns a page of approvals; Mine restricts to those assigned to the actor
func (s *Service) List(ctx context.Context, actor shared.Actor, filter ListFilter) ([]ApprovalResponse, int64, error) {
	domainFilter := approval.Filter{Filter: shared.PageFilter(filter.Page, filter.PageSize)}
	if filter.Status != "" {
		status := approval.Status(filter.Status)
		domainFilter.Status = &status
	}
	if filter.Mine || !actor.IsStaffAdmin() {
		userID := actor.UserID
		domainFilter.AssignedTo = &userID
	}

	items, err := s.repo.FindAllForTenant(ctx, actor.TenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, actor.TenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ApprovalResponse, 0, len(items))
	for i := range items {
		out = append(out, ToApprovalResponse(&items[i]))
	}
	return out, total, nil
}

// Approve records the signer's approval
func (s *Service) Approve(ctx context.Context, actor shared.Actor, id uuid.UUID, req DecisionRequest) (*ApprovalResponse, error) {
	return s.decide(ctx, actor, id, AuditActionApproved, func(a *approval.Approval) error {
		return a.Approve(actor, req.Note)
	})
}

// Reject records the signer's rejection
func (s *Service) Reject(ctx context.Context, actor shared.Actor, id uuid.UUID, req DecisionRequest) (*ApprovalResponse, error) {
	return s.decide(ctx, actor, id, AuditActionRejected, func(a *approval.Approval) error {
		return a.Reject(actor, req.Note)
	})
}

func (s *Service) decide(ctx context.Context, actor shared.Actor, id uuid.UUID, action string, apply func(*approval.Approval) error) (*ApprovalResponse, error) {
	a, err := s.repo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(a); err != nil {
		return nil, err
	}
	if err := s.repo.SaveWithLock(ctx, a); err != nil {
		return nil, err
	}

	events := a.GetDomainEvents()
	a.ClearDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish approval events",
				zap.String("approval_id", a.ID.String()),
				zap.Error(err),
			)
		}
	}
	if s.auditSink != nil {
		entry := shared.NewAuditEntry(actor, action, "approval", a.ID.String(), map[string]any{
			"entity_type": a.EntityType.String(),
			"entity_id":   a.EntityID.String(),
			"note":        a.DecisionNote,
		})
		if err := s.auditSink.Record(ctx, entry); err != nil {
			s.logger.Warn("failed to record audit entry", zap.String("action", action), zap.Error(err))
		}
	}

	resp := ToApprovalResponse(a)
	return &resp, nil
}
